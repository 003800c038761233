package chameleon

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Cluster is an immutable group of points together with the subgraph of the
// dense graph induced by them. Its name and internal connectivity are
// derived once, in NewCluster.
type Cluster struct {
	points []Point
	graph  *mat.SymDense
	ec     float64
	name   string
}

// NewCluster builds a cluster over points, inducing its subgraph from g.
// The point order is kept; it determines local subgraph indices and the
// name tie-break. Panics if points is empty.
func NewCluster(points []Point, g *Graph) *Cluster {
	if len(points) == 0 {
		panic("chameleon: empty cluster")
	}
	owned := make([]Point, len(points))
	copy(owned, points)

	sub := g.Induced(owned)
	return &Cluster{
		points: owned,
		graph:  sub,
		ec:     internalConnectivity(sub),
		name:   majorityLabel(owned),
	}
}

// internalConnectivity is the mean of the C(m,2) distinct pair weights of a
// subgraph, or NaN for a single vertex.
func internalConnectivity(sub *mat.SymDense) float64 {
	m := sub.SymmetricDim()
	if m < 2 {
		return math.NaN()
	}
	raw := sub.RawSymmetric()
	weights := make([]float64, 0, m*(m-1)/2)
	for a := 0; a < m; a++ {
		weights = append(weights, raw.Data[a*raw.Stride+a+1:a*raw.Stride+m]...)
	}
	return stat.Mean(weights, nil)
}

// majorityLabel returns the most frequent label; among equally frequent
// labels the one seen first wins.
func majorityLabel(points []Point) string {
	counts := make(map[string]int)
	var order []string
	for _, p := range points {
		if _, seen := counts[p.Label]; !seen {
			order = append(order, p.Label)
		}
		counts[p.Label]++
	}

	best, bestCount := "", 0
	for _, label := range order {
		if counts[label] > bestCount {
			best, bestCount = label, counts[label]
		}
	}
	return best
}

// Points returns the members in cluster order. The slice is owned by the
// cluster and must not be modified.
func (c *Cluster) Points() []Point { return c.points }

// Len returns the number of members.
func (c *Cluster) Len() int { return len(c.points) }

// Name returns the most frequent ground-truth label among the members.
func (c *Cluster) Name() string { return c.name }

// EC returns the internal connectivity: the mean pairwise weight among the
// members. It is NaN for a singleton; see HasEC.
func (c *Cluster) EC() float64 { return c.ec }

// HasEC reports whether EC is defined, i.e. the cluster has at least two
// members.
func (c *Cluster) HasEC() bool { return !math.IsNaN(c.ec) }

// Graph returns the induced subgraph addressed by member position.
func (c *Cluster) Graph() mat.Symmetric { return c.graph }

// Indices returns the global point indices of the members in cluster order.
func (c *Cluster) Indices() []int {
	ids := make([]int, len(c.points))
	for i, p := range c.points {
		ids[i] = p.Index
	}
	return ids
}

// centroid returns the mean planar coordinates of the members.
func (c *Cluster) centroid() (x, y float64) {
	xs, ys := c.axes(func(p Point) (float64, float64) { return p.X, p.Y })
	return stat.Mean(xs, nil), stat.Mean(ys, nil)
}

// GeoCentroid returns the mean latitude and longitude of the members.
func (c *Cluster) GeoCentroid() (lat, lng float64) {
	lats, lngs := c.axes(func(p Point) (float64, float64) { return p.Lat, p.Lng })
	return stat.Mean(lats, nil), stat.Mean(lngs, nil)
}

func (c *Cluster) axes(coords func(Point) (float64, float64)) (first, second []float64) {
	first = make([]float64, len(c.points))
	second = make([]float64, len(c.points))
	for i, p := range c.points {
		first[i], second[i] = coords(p)
	}
	return first, second
}
