// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"slices"
	"sort"

	icolor "github.com/gogpu/noise/internal/color"
)

var (
	// ErrDuplicateStop is returned when two stops share a position.
	ErrDuplicateStop = errors.New("render: duplicate gradient stop")

	// ErrInvalidStop is returned for a stop at a NaN or infinite position.
	ErrInvalidStop = errors.New("render: invalid gradient stop")
)

// ColorStop is a color at a noise value.
type ColorStop struct {
	Pos   float64     // Noise value, usually in [-1, 1]
	Color color.NRGBA // Color at this value
}

// Gradient maps noise values to colors by interpolating between sorted
// stops. Values beyond the first or last stop take that stop's color.
//
// The zero value has no stops and maps every value to transparent black.
type Gradient struct {
	stops []ColorStop

	// Linear blends stops in linear light instead of sRGB.
	Linear bool
}

// NewGradient returns a gradient holding stops.
func NewGradient(stops ...ColorStop) (*Gradient, error) {
	g := &Gradient{}
	for _, s := range stops {
		if err := g.AddStop(s.Pos, s.Color); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// AddStop inserts a stop, keeping stops sorted by position.
func (g *Gradient) AddStop(pos float64, c color.NRGBA) error {
	if math.IsNaN(pos) || math.IsInf(pos, 0) {
		return fmt.Errorf("%w: position %v", ErrInvalidStop, pos)
	}
	i := sort.Search(len(g.stops), func(i int) bool { return g.stops[i].Pos >= pos })
	if i < len(g.stops) && g.stops[i].Pos == pos {
		return fmt.Errorf("%w: position %v", ErrDuplicateStop, pos)
	}
	g.stops = slices.Insert(g.stops, i, ColorStop{Pos: pos, Color: c})
	return nil
}

// Clear removes every stop.
func (g *Gradient) Clear() { g.stops = g.stops[:0] }

// Stops returns a copy of the stops in position order.
func (g *Gradient) Stops() []ColorStop { return slices.Clone(g.stops) }

// At returns the color for noise value v.
func (g *Gradient) At(v float64) color.NRGBA {
	n := len(g.stops)
	switch {
	case n == 0:
		return color.NRGBA{}
	case v != v || v <= g.stops[0].Pos:
		return g.stops[0].Color
	case v >= g.stops[n-1].Pos:
		return g.stops[n-1].Color
	}

	i := sort.Search(n, func(i int) bool { return g.stops[i].Pos >= v })
	lo, hi := g.stops[i-1], g.stops[i]
	t := (v - lo.Pos) / (hi.Pos - lo.Pos)
	if g.Linear {
		return icolor.Mix(icolor.FromNRGBA(lo.Color), icolor.FromNRGBA(hi.Color), float32(t)).NRGBA()
	}
	return mixNRGBA(lo.Color, hi.Color, t)
}

// mixNRGBA interpolates encoded components directly.
func mixNRGBA(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + t*(float64(y)-float64(x))))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// GrayscaleGradient maps -1 to black and 1 to white.
func GrayscaleGradient() *Gradient {
	return &Gradient{stops: []ColorStop{
		{Pos: -1, Color: color.NRGBA{A: 255}},
		{Pos: 1, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	}}
}

// TerrainGradient maps noise values to elevation colors: deep water below
// -0.2, shore around 0, then grass, dirt, rock and snow.
func TerrainGradient() *Gradient {
	return &Gradient{stops: []ColorStop{
		{Pos: -1.00, Color: color.NRGBA{R: 0, G: 0, B: 128, A: 255}},
		{Pos: -0.20, Color: color.NRGBA{R: 32, G: 64, B: 128, A: 255}},
		{Pos: -0.04, Color: color.NRGBA{R: 64, G: 96, B: 192, A: 255}},
		{Pos: -0.02, Color: color.NRGBA{R: 192, G: 192, B: 128, A: 255}},
		{Pos: 0.00, Color: color.NRGBA{R: 0, G: 192, B: 0, A: 255}},
		{Pos: 0.25, Color: color.NRGBA{R: 192, G: 192, B: 0, A: 255}},
		{Pos: 0.50, Color: color.NRGBA{R: 160, G: 96, B: 64, A: 255}},
		{Pos: 0.75, Color: color.NRGBA{R: 128, G: 255, B: 255, A: 255}},
		{Pos: 1.00, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	}}
}
