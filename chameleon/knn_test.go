package chameleon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fourPoints is P0(0,0), P1(1,0), P2(0,1), P3(10,10) labelled A, A, B, B.
func fourPoints() []Point {
	return makePoints([][2]float64{{0, 0}, {1, 0}, {0, 1}, {10, 10}}, "A", "A", "B", "B")
}

func TestSparsifyFourPointsK1(t *testing.T) {
	g := mustGraph(t, fourPoints())
	knn, err := Sparsify(g, 1, 1)
	require.NoError(t, err)

	// P0 ties P1 and P2 at distance 1 and keeps both; P1 and P2 keep P0;
	// P3 ties P1 and P2 at sqrt(181) and keeps both.
	want := map[int][]int{
		0: {1, 2},
		1: {0, 3},
		2: {0, 3},
		3: {1, 2},
	}
	for i, neighbors := range want {
		assert.Equal(t, neighbors, knn.Neighbors(i), "neighbors of P%d", i)
	}
	assert.False(t, knn.HasEdge(0, 3))
	assert.False(t, knn.HasEdge(1, 2))

	w, ok := knn.Weight(1, 3)
	require.True(t, ok)
	assert.Equal(t, g.Weight(1, 3), w)
}

func TestSparsifyLowerBoundAndSymmetry(t *testing.T) {
	points := generateBlobs([][2]float64{{0, 0}, {30, 0}, {0, 30}}, 25, 4)
	g := mustGraph(t, points)

	for _, k := range []int{1, 3, 7, 20} {
		knn, err := Sparsify(g, k, 1)
		require.NoError(t, err)
		require.Equal(t, k, knn.k)

		m := knn.matrix()
		for i := 0; i < knn.Len(); i++ {
			if d := knn.degree(i); d < k {
				t.Errorf("k=%d: point %d has degree %d", k, i, d)
			}
			for j := 0; j < knn.Len(); j++ {
				if knn.HasEdge(i, j) != knn.HasEdge(j, i) {
					t.Fatalf("k=%d: edge (%d,%d) is not symmetric", k, i, j)
				}
				if m.At(i, j) != m.At(j, i) {
					t.Fatalf("k=%d: matrix not symmetric at (%d,%d)", k, i, j)
				}
			}
		}
	}
}

func TestSparsifyKeepsNearestNeighbor(t *testing.T) {
	points := generateBlobs([][2]float64{{0, 0}}, 40, 5)
	g := mustGraph(t, points)
	knn, err := Sparsify(g, 1, 1)
	require.NoError(t, err)

	for i := 0; i < g.Len(); i++ {
		nearest, best := -1, 0.0
		for j := 0; j < g.Len(); j++ {
			if j != i && g.Weight(i, j) > best {
				nearest, best = j, g.Weight(i, j)
			}
		}
		assert.True(t, knn.HasEdge(i, nearest), "point %d lost its nearest neighbor %d", i, nearest)
	}
}

func TestSparsifyParallelMatchesSequential(t *testing.T) {
	points := generateBlobs([][2]float64{{0, 0}, {10, 10}}, 40, 3)
	g := mustGraph(t, points)

	seq, err := Sparsify(g, 4, 1)
	require.NoError(t, err)
	par, err := Sparsify(g, 4, 6)
	require.NoError(t, err)

	for i := 0; i < g.Len(); i++ {
		assert.Equal(t, seq.Neighbors(i), par.Neighbors(i), "row %d", i)
	}
}

func TestSparsifyInvalidK(t *testing.T) {
	g := mustGraph(t, fourPoints())
	for _, k := range []int{0, -1, 4, 5} {
		_, err := Sparsify(g, k, 1)
		assert.ErrorIs(t, err, ErrInvalidConfig, "k=%d", k)
	}
}

func TestSparsifyFullGraph(t *testing.T) {
	g := mustGraph(t, fourPoints())
	knn, err := Sparsify(g, 3, 1)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.Equal(t, 3, knn.degree(i))
	}
}
