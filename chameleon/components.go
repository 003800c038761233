package chameleon

// ExtractComponents returns one seed cluster per connected component of
// knn. Components are discovered by depth-first search starting from the
// lowest unvisited index and visiting neighbors in increasing index order;
// members are listed in discovery order. Subgraphs are induced from the
// dense graph g, not from knn.
func ExtractComponents(knn *KNNGraph, g *Graph, points []Point) []*Cluster {
	n := knn.Len()
	visited := make([]bool, n)
	var clusters []*Cluster

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		members := dfs(knn, start, visited)
		component := make([]Point, len(members))
		for i, idx := range members {
			component[i] = points[idx]
		}
		clusters = append(clusters, NewCluster(component, g))
	}
	return clusters
}

// dfs returns the vertices reachable from start in pre-order. Neighbors are
// pushed in decreasing order so the lowest one is expanded first, matching
// the recursive traversal.
func dfs(knn *KNNGraph, start int, visited []bool) []int {
	var order []int
	stack := []int{start}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[v] {
			continue
		}
		visited[v] = true
		order = append(order, v)

		for u := knn.Len() - 1; u >= 0; u-- {
			if !visited[u] && knn.HasEdge(v, u) {
				stack = append(stack, u)
			}
		}
	}
	return order
}
