package render

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/jjanczur/SPDB/chameleon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var planar = chameleon.DistanceFunc(func(a, b chameleon.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
})

func clustersOf(t *testing.T, groups ...[][2]float64) []*chameleon.Cluster {
	t.Helper()
	var points []chameleon.Point
	var bounds []int
	for _, g := range groups {
		for _, c := range g {
			points = append(points, chameleon.Point{Index: len(points), X: c[0], Y: c[1]})
		}
		bounds = append(bounds, len(points))
	}
	g, err := chameleon.BuildGraph(points, planar, 1)
	require.NoError(t, err)

	var out []*chameleon.Cluster
	start := 0
	for _, end := range bounds {
		out = append(out, chameleon.NewCluster(points[start:end], g))
		start = end
	}
	return out
}

var small = Options{Width: 100, Height: 60, PointSize: 3, Margin: 5}

func TestDraw(t *testing.T) {
	clusters := clustersOf(t,
		[][2]float64{{0, 0}, {10, 5}},
		[][2]float64{{10, 0}},
	)
	img, err := Draw(clusters, small)
	require.NoError(t, err)
	require.Equal(t, 100, img.Bounds().Dx())
	require.Equal(t, 60, img.Bounds().Dy())

	// Scale is min(89/10, 49/5) = 8.9, the y range is centered vertically.
	assert.Equal(t, Color(0), img.RGBAAt(5, 7))
	assert.Equal(t, Color(0), img.RGBAAt(94, 52))
	assert.Equal(t, Color(1), img.RGBAAt(94, 7))

	white := color.RGBA{255, 255, 255, 255}
	assert.Equal(t, white, img.RGBAAt(0, 0))
	assert.Equal(t, white, img.RGBAAt(50, 30))
}

func TestDrawSinglePointCentered(t *testing.T) {
	// Only the first cluster is drawn.
	clusters := clustersOf(t, [][2]float64{{3, 4}}, [][2]float64{{90, 90}})
	img, err := Draw(clusters[:1], small)
	require.NoError(t, err)
	assert.Equal(t, Color(0), img.RGBAAt(50, 30))
}

func TestDrawInvalidOptions(t *testing.T) {
	clusters := clustersOf(t, [][2]float64{{0, 0}, {1, 1}})

	_, err := Draw(clusters, Options{Width: 10, Height: 10, PointSize: 1, Margin: 5})
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = Draw(clusters, Options{Width: 10, Height: 10, PointSize: 0})
	assert.Error(t, err)
}

func TestColorsDistinct(t *testing.T) {
	seen := map[color.RGBA]int{}
	for i := 0; i < 12; i++ {
		c := Color(i)
		assert.Equal(t, uint8(255), c.A)
		if j, ok := seen[c]; ok {
			t.Errorf("Color(%d) equals Color(%d): %v", i, j, c)
		}
		seen[c] = i
	}
	assert.Equal(t, Color(3), Color(3))
}

func TestWritePNG(t *testing.T) {
	clusters := clustersOf(t, [][2]float64{{0, 0}, {10, 5}}, [][2]float64{{10, 0}})

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, clusters, small))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, SavePNG(path, clusters, small))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}
