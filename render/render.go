// Package render draws clusters as colored points on a PNG image.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/jjanczur/SPDB/chameleon"
)

// ErrEmptyImage is returned when the options describe an image with no
// drawable area.
var ErrEmptyImage = errors.New("render: empty image")

// Options controls the output image.
type Options struct {
	Width, Height int
	// PointSize is the side of the square drawn for each point, in pixels.
	PointSize int
	// Margin is kept free on every side of the image.
	Margin int
}

// DefaultOptions matches the projected map: 2000x1000 pixels.
func DefaultOptions() Options {
	return Options{Width: 2000, Height: 1000, PointSize: 5, Margin: 20}
}

func (o Options) validate() error {
	if o.Width-2*o.Margin < 1 || o.Height-2*o.Margin < 1 {
		return fmt.Errorf("%w: %dx%d with margin %d", ErrEmptyImage, o.Width, o.Height, o.Margin)
	}
	if o.PointSize < 1 {
		return fmt.Errorf("render: PointSize must be >= 1, got %d", o.PointSize)
	}
	return nil
}

// Draw renders every point of every cluster on a white background. The
// bounding box of the points' planar coordinates is scaled uniformly to fit
// inside the margins.
func Draw(clusters []*chameleon.Cluster, opts Options) (*image.RGBA, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	fit := newViewport(clusters, opts)
	half := opts.PointSize / 2
	for i, c := range clusters {
		fill := image.NewUniform(Color(i))
		for _, p := range c.Points() {
			px, py := fit.project(p.X, p.Y)
			r := image.Rect(px-half, py-half, px-half+opts.PointSize, py-half+opts.PointSize)
			draw.Draw(img, r.Intersect(img.Bounds()), fill, image.Point{}, draw.Src)
		}
	}
	return img, nil
}

type viewport struct {
	minX, minY       float64
	scale            float64
	offsetX, offsetY float64
}

func newViewport(clusters []*chameleon.Cluster, opts Options) viewport {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range clusters {
		for _, p := range c.Points() {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}

	innerW := float64(opts.Width - 2*opts.Margin - 1)
	innerH := float64(opts.Height - 2*opts.Margin - 1)
	spanX, spanY := maxX-minX, maxY-minY

	scale := math.Inf(1)
	if spanX > 0 {
		scale = innerW / spanX
	}
	if spanY > 0 {
		scale = math.Min(scale, innerH/spanY)
	}
	if math.IsInf(scale, 1) {
		// No points, or all on one spot.
		scale = 0
	}

	return viewport{
		minX:    minX,
		minY:    minY,
		scale:   scale,
		offsetX: float64(opts.Margin) + (innerW-spanX*scale)/2,
		offsetY: float64(opts.Margin) + (innerH-spanY*scale)/2,
	}
}

func (v viewport) project(x, y float64) (int, int) {
	return int(math.Round(v.offsetX + (x-v.minX)*v.scale)),
		int(math.Round(v.offsetY + (y-v.minY)*v.scale))
}

// Color returns the color of the i-th cluster. Hues advance by the golden
// ratio so neighboring indices stay far apart on the color wheel.
func Color(i int) color.RGBA {
	const phi = 0.618033988749895
	h := math.Mod(0.1+float64(i)*phi, 1)
	return hsv(h, 0.75, 0.85)
}

func hsv(h, s, v float64) color.RGBA {
	h6 := h * 6
	sector := int(h6) % 6
	f := h6 - math.Floor(h6)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch sector {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return color.RGBA{R: uint8(r*255 + 0.5), G: uint8(g*255 + 0.5), B: uint8(b*255 + 0.5), A: 255}
}

// WritePNG draws clusters and encodes the image to w.
func WritePNG(w io.Writer, clusters []*chameleon.Cluster, opts Options) error {
	img, err := Draw(clusters, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encoding png: %w", err)
	}
	return nil
}

// SavePNG draws clusters into a PNG file at path.
func SavePNG(path string, clusters []*chameleon.Cluster, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("render: %w", cerr)
		}
	}()
	return WritePNG(f, clusters, opts)
}
