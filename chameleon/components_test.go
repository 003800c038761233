package chameleon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractComponentsFourPoints(t *testing.T) {
	points := fourPoints()
	g := mustGraph(t, points)
	knn, err := Sparsify(g, 1, 1)
	require.NoError(t, err)

	clusters := ExtractComponents(knn, g, points)

	// Every point is linked through the ties, so there is one component,
	// discovered as P0 -> P1 -> P3 -> P2.
	require.Len(t, clusters, 1)
	assert.Equal(t, []int{0, 1, 3, 2}, clusters[0].Indices())
	assert.Equal(t, "A", clusters[0].Name())
}

func TestExtractComponentsSeparatedGroups(t *testing.T) {
	points := makePoints([][2]float64{
		{0, 0}, {100, 0}, {1, 0}, {101, 0}, {0, 1}, {100, 1},
	}, "l", "r", "l", "r", "l", "r")
	g := mustGraph(t, points)
	knn, err := Sparsify(g, 1, 1)
	require.NoError(t, err)

	clusters := ExtractComponents(knn, g, points)

	require.Len(t, clusters, 2)
	assert.Equal(t, []int{0, 2, 4}, clusters[0].Indices())
	assert.Equal(t, []int{1, 3, 5}, clusters[1].Indices())
	assert.Equal(t, "l", clusters[0].Name())
	assert.Equal(t, "r", clusters[1].Name())
	requirePartition(t, clusters, len(points))
}

func TestExtractComponentsSubgraphFromDenseGraph(t *testing.T) {
	// With k=1 the chain 0-1-2 has no direct 0-2 edge, but the seed
	// cluster's subgraph still carries the dense weight.
	points := makePoints([][2]float64{{0, 0}, {1, 0}, {2.5, 0}, {50, 50}, {51, 50}})
	g := mustGraph(t, points)
	knn, err := Sparsify(g, 1, 1)
	require.NoError(t, err)
	require.False(t, knn.HasEdge(0, 2))

	clusters := ExtractComponents(knn, g, points)
	require.Len(t, clusters, 2)

	first := clusters[0]
	require.Equal(t, []int{0, 1, 2}, first.Indices())
	assert.Equal(t, g.Weight(0, 2), first.Graph().At(0, 2))
}

func TestExtractComponentsIsolatedPoint(t *testing.T) {
	points := makePoints([][2]float64{{0, 0}, {1, 0}, {2, 0}})
	g := mustGraph(t, points)
	// A hand-built graph with no edges leaves every point on its own.
	empty := &KNNGraph{n: 3, k: 1}
	empty.sym = g.Induced(points)
	raw := empty.sym.RawSymmetric()
	for i := range raw.Data {
		raw.Data[i] = 0
	}
	empty.data, empty.stride = raw.Data, raw.Stride

	clusters := ExtractComponents(empty, g, points)
	require.Len(t, clusters, 3)
	for i, c := range clusters {
		assert.Equal(t, []int{i}, c.Indices())
		assert.False(t, c.HasEC())
	}
}
