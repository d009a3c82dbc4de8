// Package color blends colors in linear light.
//
// Gradient stops are authored in sRGB. Blending the encoded values directly
// darkens the midpoints, so the render package can decode both stops to
// linear light, mix there and encode the result.
package color

import "image/color"

// Linear is a color in linear light with straight, never encoded, alpha.
// Components are in [0, 1].
type Linear struct {
	R, G, B, A float32
}

// FromNRGBA decodes an sRGB color.
func FromNRGBA(c color.NRGBA) Linear {
	return Linear{
		R: toLinear[c.R],
		G: toLinear[c.G],
		B: toLinear[c.B],
		A: float32(c.A) / 255,
	}
}

// NRGBA encodes l back to sRGB, clamping out-of-range components.
func (l Linear) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: Encode(l.R),
		G: Encode(l.G),
		B: Encode(l.B),
		A: unit8(l.A),
	}
}

// Mix returns a + t*(b-a) per component.
func Mix(a, b Linear, t float32) Linear {
	return Linear{
		R: a.R + t*(b.R-a.R),
		G: a.G + t*(b.G-a.G),
		B: a.B + t*(b.B-a.B),
		A: a.A + t*(b.A-a.A),
	}
}

// unit8 maps [0, 1] to a byte with rounding.
func unit8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
