// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/noise/mapping"
)

var (
	black = color.NRGBA{A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func filledMap(t *testing.T, w, h int, fn func(x, y int) float32) *mapping.NoiseMap {
	t.Helper()
	m, err := mapping.NewNoiseMap(w, h)
	if err != nil {
		t.Fatalf("NewNoiseMap: %v", err)
	}
	for y := range h {
		for x := range w {
			m.Set(x, y, fn(x, y))
		}
	}
	return m
}

// --- Gradient Tests ---

func TestGradient_At(t *testing.T) {
	g := GrayscaleGradient()
	tests := []struct {
		name string
		v    float64
		want color.NRGBA
	}{
		{"below range", -3, black},
		{"first stop", -1, black},
		{"midpoint", 0, color.NRGBA{R: 128, G: 128, B: 128, A: 255}},
		{"last stop", 1, white},
		{"above range", 5, white},
		{"NaN", math.NaN(), black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.At(tt.v); got != tt.want {
				t.Errorf("At(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestGradient_Linear(t *testing.T) {
	g := GrayscaleGradient()
	g.Linear = true
	if got := g.At(0); got.R != 188 {
		t.Errorf("linear At(0).R = %d, want 188", got.R)
	}
}

func TestGradient_AddStop(t *testing.T) {
	g, err := NewGradient(
		ColorStop{Pos: 0.5, Color: white},
		ColorStop{Pos: -0.5, Color: black},
	)
	if err != nil {
		t.Fatalf("NewGradient: %v", err)
	}
	stops := g.Stops()
	if len(stops) != 2 || stops[0].Pos != -0.5 || stops[1].Pos != 0.5 {
		t.Errorf("Stops() = %v, want sorted by position", stops)
	}
	if err := g.AddStop(0.5, black); !errors.Is(err, ErrDuplicateStop) {
		t.Errorf("AddStop(duplicate) = %v, want ErrDuplicateStop", err)
	}
	if err := g.AddStop(math.Inf(1), black); !errors.Is(err, ErrInvalidStop) {
		t.Errorf("AddStop(+Inf) = %v, want ErrInvalidStop", err)
	}
	g.Clear()
	if got := g.At(0); got != (color.NRGBA{}) {
		t.Errorf("empty gradient At(0) = %v, want transparent", got)
	}
}

func TestTerrainGradient_Sorted(t *testing.T) {
	stops := TerrainGradient().Stops()
	for i := 1; i < len(stops); i++ {
		if stops[i-1].Pos >= stops[i].Pos {
			t.Errorf("stop %d at %v is not after %v", i, stops[i].Pos, stops[i-1].Pos)
		}
	}
	if stops[0].Pos != -1 || stops[len(stops)-1].Pos != 1 {
		t.Errorf("terrain stops span [%v, %v], want [-1, 1]", stops[0].Pos, stops[len(stops)-1].Pos)
	}
}

// --- Renderer Tests ---

func TestRenderer_FlipsRows(t *testing.T) {
	m := filledMap(t, 2, 2, func(_, y int) float32 { return float32(2*y - 1) })
	img, err := NewRenderer(nil).Render(context.Background(), m)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := img.NRGBAAt(0, 0); got != white {
		t.Errorf("top row = %v, want white (map row 1)", got)
	}
	if got := img.NRGBAAt(0, 1); got != black {
		t.Errorf("bottom row = %v, want black (map row 0)", got)
	}
}

func TestRenderer_FlatLighting(t *testing.T) {
	m := filledMap(t, 4, 4, func(int, int) float32 { return 1 })
	r := NewRenderer(GrayscaleGradient())
	r.Lighting = true

	img, err := r.Render(context.Background(), m)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// A flat surface receives sin(elevation) * sqrt2 / 2 = 0.5.
	got := img.NRGBAAt(1, 1)
	if got.R < 127 || got.R > 128 || got.A != 255 {
		t.Errorf("flat lit white = %v, want half gray", got)
	}
}

func TestRenderer_SlopeFacingLightIsBrighter(t *testing.T) {
	// Values fall toward the east, so slopes face a light from the east.
	m := filledMap(t, 8, 1, func(x, _ int) float32 { return -0.1 * float32(x) })
	r := NewRenderer(GrayscaleGradient())
	r.Gradient, _ = NewGradient(ColorStop{Pos: 0, Color: white})
	r.Lighting = true
	r.LightAzimuth, r.LightElevation = 0, 30

	img, err := r.Render(context.Background(), m)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	flat := NewRenderer(r.Gradient)
	flat.Lighting = true
	flat.LightAzimuth, flat.LightElevation = 0, 30
	ref, err := flat.Render(context.Background(), filledMap(t, 8, 1, func(int, int) float32 { return 0 }))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.NRGBAAt(3, 0).R <= ref.NRGBAAt(3, 0).R {
		t.Errorf("slope facing the light = %v, flat = %v", img.NRGBAAt(3, 0), ref.NRGBAAt(3, 0))
	}
}

func TestRenderer_Background(t *testing.T) {
	g, _ := NewGradient(ColorStop{Pos: 0, Color: color.NRGBA{R: 255, A: 0}})
	m := filledMap(t, 2, 2, func(int, int) float32 { return 0 })

	bg := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range bg.Pix {
		bg.Pix[i] = 255
	}
	bg.SetNRGBA(0, 0, color.NRGBA{B: 255, A: 255})
	r := NewRenderer(g)
	r.Background = bg

	img, err := r.Render(context.Background(), m)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("transparent gradient over blue = %v, want blue", got)
	}

	r.Background = image.NewNRGBA(image.Rect(0, 0, 3, 3))
	if _, err := r.Render(context.Background(), m); !errors.Is(err, ErrBackgroundSize) {
		t.Errorf("Render with mismatched background = %v, want ErrBackgroundSize", err)
	}
}

func TestRenderer_Errors(t *testing.T) {
	if _, err := NewRenderer(nil).Render(context.Background(), nil); !errors.Is(err, ErrNilMap) {
		t.Errorf("Render(nil) = %v, want ErrNilMap", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := filledMap(t, 4, 64, func(int, int) float32 { return 0 })
	if _, err := NewRenderer(nil).Render(ctx, m); !errors.Is(err, context.Canceled) {
		t.Errorf("Render(canceled) = %v, want context.Canceled", err)
	}
}

func TestNeighbor(t *testing.T) {
	tests := []struct {
		i, d, n int
		wrap    bool
		want    int
	}{
		{3, -1, 8, false, 2},
		{3, 1, 8, false, 4},
		{0, -1, 8, false, 0},
		{7, 1, 8, false, 7},
		{0, -1, 8, true, 7},
		{7, 1, 8, true, 0},
	}
	for _, tt := range tests {
		if got := neighbor(tt.i, tt.d, tt.n, tt.wrap); got != tt.want {
			t.Errorf("neighbor(%d, %d, %d, %t) = %d, want %d", tt.i, tt.d, tt.n, tt.wrap, got, tt.want)
		}
	}
}

// --- NormalMap Tests ---

func TestNormalMap_Flat(t *testing.T) {
	m := filledMap(t, 3, 3, func(int, int) float32 { return 0.4 })
	img, err := NormalMap(context.Background(), m, 2, false)
	if err != nil {
		t.Fatalf("NormalMap: %v", err)
	}
	want := color.NRGBA{R: 127, G: 127, B: 255, A: 255}
	if got := img.NRGBAAt(1, 1); got != want {
		t.Errorf("flat normal = %v, want %v", got, want)
	}
}

func TestNormalMap_Slope(t *testing.T) {
	m := filledMap(t, 4, 4, func(x, _ int) float32 { return float32(x) })
	img, err := NormalMap(context.Background(), m, 1, false)
	if err != nil {
		t.Fatalf("NormalMap: %v", err)
	}
	// Rising to the east tilts the normal west.
	if got := img.NRGBAAt(1, 1); got.R >= 127 || got.B >= 255 {
		t.Errorf("sloped normal = %v, want red below 127", got)
	}
}
