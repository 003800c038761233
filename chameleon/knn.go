package chameleon

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// KNNGraph is the symmetric k-nearest-neighbor graph derived from a Graph.
// Absent edges are stored as 0; every present edge carries its dense-graph
// weight, which is always > 0.
type KNNGraph struct {
	n      int
	k      int
	sym    *mat.SymDense
	data   []float64
	stride int
}

// Sparsify keeps, for every point i, the edges whose weight is at least the
// k-th largest weight in row i, then makes the result undirected: an edge
// kept by either endpoint is present in both directions.
//
// All entries equal to the k-th largest weight survive, so ties never depend
// on sort order and a point may keep more than k neighbors.
func Sparsify(g *Graph, k, numWorkers int) (*KNNGraph, error) {
	n := g.Len()
	if k < 1 || k >= n {
		return nil, configError("K must be in [1, %d), got %d", n, k)
	}

	// kept[i*n+j] records the directed decision of row i.
	kept := make([]bool, n*n)
	_ = forEachRowRange(n, numWorkers, func(_ int, r rowRange) error {
		weights := make([]float64, 0, n-1)
		for i := r.start; i < r.end; i++ {
			weights = weights[:0]
			for j := 0; j < n; j++ {
				if j != i {
					weights = append(weights, g.Weight(i, j))
				}
			}
			sort.Float64s(weights)
			minWeight := weights[len(weights)-k]

			for j := 0; j < n; j++ {
				if j != i && g.Weight(i, j) >= minWeight {
					kept[i*n+j] = true
				}
			}
		}
		return nil
	})

	sym := mat.NewSymDense(n, nil)
	raw := sym.RawSymmetric()
	knn := &KNNGraph{n: n, k: k, sym: sym, data: raw.Data, stride: raw.Stride}
	for i := 0; i < n; i++ {
		row := knn.data[i*knn.stride:]
		for j := i + 1; j < n; j++ {
			if kept[i*n+j] || kept[j*n+i] {
				row[j] = g.Weight(i, j)
			}
		}
	}
	return knn, nil
}

// Len returns the number of points in the graph.
func (g *KNNGraph) Len() int { return g.n }

// Weight returns the weight of edge (i, j) and whether the edge is present.
func (g *KNNGraph) Weight(i, j int) (float64, bool) {
	if i == j {
		return 0, false
	}
	if i > j {
		i, j = j, i
	}
	w := g.data[i*g.stride+j]
	return w, w > 0
}

// HasEdge reports whether i and j are connected.
func (g *KNNGraph) HasEdge(i, j int) bool {
	_, ok := g.Weight(i, j)
	return ok
}

// Neighbors returns the neighbors of i in increasing index order.
func (g *KNNGraph) Neighbors(i int) []int {
	var out []int
	for j := 0; j < g.n; j++ {
		if g.HasEdge(i, j) {
			out = append(out, j)
		}
	}
	return out
}

// degree returns the number of neighbors of i.
func (g *KNNGraph) degree(i int) int {
	d := 0
	for j := 0; j < g.n; j++ {
		if g.HasEdge(i, j) {
			d++
		}
	}
	return d
}

// matrix exposes the graph as a gonum symmetric matrix with zeros for
// absent edges.
func (g *KNNGraph) matrix() mat.Symmetric { return g.sym }
