// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render turns a noise map into an image.
//
// A Gradient maps noise values to colors. A Renderer applies the gradient to
// every value of a mapping.NoiseMap and optionally shades the result with a
// directional light computed from the slope between neighboring values,
// which makes terrain maps read as relief.
//
// # Usage
//
//	m, err := mapping.NewSphereBuilder(root, 512, 256).Build(ctx)
//	if err != nil {
//		return err
//	}
//	r := render.NewRenderer(render.TerrainGradient())
//	r.Lighting = true
//	img, err := r.Render(ctx, m)
//
// NormalMap encodes the surface normals of a map instead, for bump
// mapping.
package render
