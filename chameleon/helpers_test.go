package chameleon

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// planar measures plain Euclidean distance on X/Y, which keeps hand-computed
// expectations simple.
var planar = DistanceFunc(func(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
})

// makePoints builds indexed points from planar coordinates. labels may be
// shorter than coords; missing labels are empty.
func makePoints(coords [][2]float64, labels ...string) []Point {
	points := make([]Point, len(coords))
	for i, c := range coords {
		points[i] = Point{Index: i, X: c[0], Y: c[1], Lat: c[1], Lng: c[0]}
		if i < len(labels) {
			points[i].Label = labels[i]
		}
	}
	return points
}

// generateBlobs returns perBlob points around each center, labelled by
// center position ("a", "b", ...). Coordinates are drawn from a seeded
// normal distribution so runs are reproducible.
func generateBlobs(centers [][2]float64, perBlob int, spread float64) []Point {
	rng := rand.New(rand.NewSource(42))
	points := make([]Point, 0, len(centers)*perBlob)
	for c, center := range centers {
		label := string(rune('a' + c))
		for range perBlob {
			x := center[0] + rng.NormFloat64()*spread
			y := center[1] + rng.NormFloat64()*spread
			points = append(points, Point{Index: len(points), X: x, Y: y, Lat: y, Lng: x, Label: label})
		}
	}
	return points
}

func mustGraph(t testing.TB, points []Point) *Graph {
	t.Helper()
	g, err := BuildGraph(points, planar, 1)
	require.NoError(t, err)
	return g
}

// requirePartition checks that clusters cover indices 0..n-1 exactly once.
func requirePartition(t testing.TB, clusters []*Cluster, n int) {
	t.Helper()
	var all []int
	for _, c := range clusters {
		all = append(all, c.Indices()...)
	}
	slices.Sort(all)
	want := make([]int, n)
	for i := range want {
		want[i] = i
	}
	require.Equal(t, want, all, "clusters do not partition the point set")
}

// membership summarizes a cluster list for comparisons.
func membership(clusters []*Cluster) [][]int {
	out := make([][]int, len(clusters))
	for i, c := range clusters {
		out[i] = c.Indices()
	}
	return out
}
