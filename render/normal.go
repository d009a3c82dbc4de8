// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/noise/mapping"
)

// NormalMap encodes the surface normal at every value of m as a color:
// the x, y and z components in [-1, 1] map to red, green and blue. Values
// are scaled by bumpHeight before the slope is taken. Rows are flipped as
// in Renderer.Render.
func NormalMap(ctx context.Context, m *mapping.NoiseMap, bumpHeight float64, wrap bool) (*image.NRGBA, error) {
	if m == nil {
		return nil, ErrNilMap
	}
	w, h := m.Width(), m.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	err := rows(ctx, 0, h, func(y int) {
		up := neighbor(y, 1, h, wrap)
		for x := range w {
			right := neighbor(x, 1, w, wrap)
			img.SetNRGBA(x, h-1-y, normalColor(
				float64(m.At(x, y)), float64(m.At(right, y)), float64(m.At(x, up)), bumpHeight))
		}
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

func normalColor(center, right, up, bump float64) color.NRGBA {
	dx := (center - right) * bump
	dy := (center - up) * bump
	d := math.Sqrt(dx*dx + dy*dy + 1)
	enc := func(v float64) uint8 {
		return uint8(math.Floor((v + 1) * 127.5))
	}
	return color.NRGBA{R: enc(dx / d), G: enc(dy / d), B: enc(1 / d), A: 255}
}
