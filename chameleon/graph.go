package chameleon

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Graph is the dense similarity graph over all points. The weight of edge
// (i, j) is 1/distance(i, j). Only the upper triangle is stored; the
// diagonal holds zero and is never read. A Graph is read-only after
// BuildGraph returns and may be shared between goroutines.
type Graph struct {
	n      int
	sym    *mat.SymDense
	data   []float64
	stride int
}

// BuildGraph computes the dense similarity graph of points. points[i].Index
// must equal i. Each unordered pair is evaluated once.
//
// Coincident points fail with ErrCoincidentPoints and distances that are
// negative, NaN or infinite fail with ErrInvalidDistance. When several pairs
// are invalid the first one in row-major order is reported, independent of
// numWorkers.
func BuildGraph(points []Point, metric DistanceMetric, numWorkers int) (*Graph, error) {
	n := len(points)
	if n < 2 {
		return nil, configError("need at least 2 points, got %d", n)
	}
	for i := range points {
		if points[i].Index != i {
			return nil, configError("point at position %d has index %d", i, points[i].Index)
		}
	}
	if metric == nil {
		metric = HaversineMetric{}
	}

	sym := mat.NewSymDense(n, nil)
	raw := sym.RawSymmetric()
	g := &Graph{n: n, sym: sym, data: raw.Data, stride: raw.Stride}

	// Rows are independent: worker w owns the upper-triangle cells of its rows.
	_ = forEachRowRange(n, numWorkers, func(_ int, r rowRange) error {
		for i := r.start; i < r.end; i++ {
			row := g.data[i*g.stride:]
			for j := i + 1; j < n; j++ {
				row[j] = 1.0 / metric.Distance(points[i], points[j])
			}
		}
		return nil
	})

	for i := 0; i < n; i++ {
		row := g.data[i*g.stride:]
		for j := i + 1; j < n; j++ {
			w := row[j]
			switch {
			case math.IsInf(w, 0):
				return nil, &PhaseError{Phase: PhaseGraph, Points: []int{i, j}, Err: ErrCoincidentPoints}
			case !(w > 0):
				return nil, &PhaseError{Phase: PhaseGraph, Points: []int{i, j}, Err: ErrInvalidDistance}
			}
		}
	}

	return g, nil
}

// Len returns the number of points in the graph.
func (g *Graph) Len() int { return g.n }

// Weight returns the similarity weight between points i and j. The diagonal
// is undefined and returns NaN.
func (g *Graph) Weight(i, j int) float64 {
	if i == j {
		return math.NaN()
	}
	if i > j {
		i, j = j, i
	}
	return g.data[i*g.stride+j]
}

// matrix exposes the graph as a gonum symmetric matrix.
func (g *Graph) matrix() mat.Symmetric { return g.sym }

// Induced builds the subgraph over points, addressed by position in points:
// cell (a, b) mirrors Weight(points[a].Index, points[b].Index).
func (g *Graph) Induced(points []Point) *mat.SymDense {
	m := len(points)
	sub := mat.NewSymDense(m, nil)
	raw := sub.RawSymmetric()
	for a := 0; a < m; a++ {
		row := raw.Data[a*raw.Stride:]
		for b := a + 1; b < m; b++ {
			row[b] = g.Weight(points[a].Index, points[b].Index)
		}
	}
	return sub
}

// minCrossWeight returns the weakest direct link between two disjoint point
// sets.
func (g *Graph) minCrossWeight(a, b []Point) float64 {
	weakest := math.Inf(1)
	for _, p := range a {
		for _, q := range b {
			if w := g.Weight(p.Index, q.Index); w < weakest {
				weakest = w
			}
		}
	}
	return weakest
}
