// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/noise"
	"github.com/gogpu/noise/internal/parallel"
	"github.com/gogpu/noise/mapping"
)

var (
	// ErrNilMap is returned when rendering a nil noise map.
	ErrNilMap = errors.New("render: nil noise map")

	// ErrBackgroundSize is returned when the background image does not
	// match the map size.
	ErrBackgroundSize = errors.New("render: background size mismatch")
)

// Renderer colors a noise map with a gradient and an optional light.
//
// Row 0 of the map becomes the bottom row of the image, so a map built
// from south to north renders with north up.
type Renderer struct {
	// Gradient maps values to colors. Nil means GrayscaleGradient.
	Gradient *Gradient

	// Lighting enables shading by the slope of the map.
	Lighting bool

	// LightAzimuth is the direction the light comes from, in degrees
	// counterclockwise from east.
	LightAzimuth float64

	// LightElevation is the angle of the light above the horizon, in
	// degrees.
	LightElevation float64

	// LightContrast scales the effect of the slope.
	LightContrast float64

	// LightBrightness scales the computed light.
	LightBrightness float64

	// LightIntensity is the intensity of the light on a surface facing it.
	LightIntensity float64

	// LightColor tints the light.
	LightColor color.NRGBA

	// Wrap takes the neighbors of edge values from the opposite edge,
	// for maps that tile or wrap around a cylinder or sphere.
	Wrap bool

	// Background is blended under translucent gradient colors. Nil means
	// opaque white. It must have the size of the map.
	Background *image.NRGBA

	// Workers is the number of goroutines used. Zero means GOMAXPROCS.
	Workers int
}

// NewRenderer returns a renderer with a light from the north-east at 45
// degrees, disabled until Lighting is set.
func NewRenderer(g *Gradient) *Renderer {
	return &Renderer{
		Gradient:        g,
		LightAzimuth:    45,
		LightElevation:  45,
		LightContrast:   1,
		LightBrightness: 1,
		LightIntensity:  1,
		LightColor:      color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// light holds the lighting terms that do not depend on the map.
type light struct {
	io, ix, iy float64
}

func (r *Renderer) light() light {
	az := r.LightAzimuth * math.Pi / 180
	el := r.LightElevation * math.Pi / 180
	i := r.LightIntensity
	io := i * math.Sqrt2 * math.Sin(el) / 2
	k := (i - io) * r.LightContrast * math.Sqrt2 * math.Cos(el)
	return light{io: io, ix: k * math.Cos(az), iy: k * math.Sin(az)}
}

// at returns the light reaching a value with the given neighbors.
func (l light) at(left, right, down, up float64) float64 {
	return max(l.ix*(left-right)+l.iy*(down-up)+l.io, 0)
}

// neighbor returns the index next to i in direction d (-1 or 1) among n,
// wrapping or staying on i at the edges.
func neighbor(i, d, n int, wrap bool) int {
	j := i + d
	if j >= 0 && j < n {
		return j
	}
	if wrap {
		return (j + n) % n
	}
	return i
}

// Render colors m into a new image.
func (r *Renderer) Render(ctx context.Context, m *mapping.NoiseMap) (*image.NRGBA, error) {
	if m == nil {
		return nil, ErrNilMap
	}
	w, h := m.Width(), m.Height()
	if r.Background != nil && r.Background.Rect.Size() != (image.Point{X: w, Y: h}) {
		return nil, fmt.Errorf("%w: background %v, map %dx%d", ErrBackgroundSize, r.Background.Rect.Size(), w, h)
	}
	g := r.Gradient
	if g == nil {
		g = GrayscaleGradient()
	}
	lt := r.light()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	err := rows(ctx, r.Workers, h, func(y int) {
		iy := h - 1 - y
		down, up := neighbor(y, -1, h, r.Wrap), neighbor(y, 1, h, r.Wrap)
		for x := range w {
			v := float64(m.At(x, y))
			intensity := 1.0
			if r.Lighting {
				left, right := neighbor(x, -1, w, r.Wrap), neighbor(x, 1, w, r.Wrap)
				intensity = r.LightBrightness * lt.at(
					float64(m.At(left, y)), float64(m.At(right, y)),
					float64(m.At(x, down)), float64(m.At(x, up)))
			}
			bg := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if r.Background != nil {
				bg = r.Background.NRGBAAt(r.Background.Rect.Min.X+x, r.Background.Rect.Min.Y+iy)
			}
			img.SetNRGBA(x, iy, r.shade(g.At(v), bg, intensity))
		}
	})
	if err != nil {
		return nil, err
	}
	noise.Logger().Debug("render: rendered map", "width", w, "height", h, "lighting", r.Lighting)
	return img, nil
}

// shade blends src over bg by the source alpha and applies the light.
func (r *Renderer) shade(src, bg color.NRGBA, intensity float64) color.NRGBA {
	a := float64(src.A) / 255
	ch := func(s, b, l uint8) uint8 {
		v := (float64(b) + a*(float64(s)-float64(b))) / 255
		if r.Lighting {
			v *= intensity * float64(l) / 255
		}
		return uint8(math.Round(min(max(v, 0), 1) * 255))
	}
	return color.NRGBA{
		R: ch(src.R, bg.R, r.LightColor.R),
		G: ch(src.G, bg.G, r.LightColor.G),
		B: ch(src.B, bg.B, r.LightColor.B),
		A: max(src.A, bg.A),
	}
}

// rows calls fn for every row in [0, height) on a worker pool, checking ctx
// between rows.
func rows(ctx context.Context, workers, height int, fn func(y int)) error {
	pool := parallel.NewWorkerPool(workers)
	defer pool.Close()

	bands := parallel.SplitRows(height, 0)
	return pool.Run(ctx, len(bands), func(_, item int) error {
		for y := bands[item].Start; y < bands[item].End; y++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(y)
		}
		return nil
	})
}
