package color

import "math"

// toLinear holds the decoded value of every sRGB byte.
var toLinear [256]float32

// toSRGB holds encoded bytes for linear values sampled at 12-bit precision,
// which is enough for 8-bit output.
var toSRGB [4096]uint8

func init() {
	for i := range toLinear {
		toLinear[i] = float32(decode(float64(i) / 255))
	}
	for i := range toSRGB {
		s := encode(float64(i) / float64(len(toSRGB)-1))
		toSRGB[i] = uint8(math.Round(math.Min(math.Max(s*255, 0), 255)))
	}
}

// decode is the sRGB transfer function for a component in [0, 1].
func decode(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// encode is the inverse of decode.
func encode(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

// Decode converts an sRGB byte to linear light.
func Decode(s uint8) float32 { return toLinear[s] }

// Encode converts a linear component to an sRGB byte. Values outside
// [0, 1] are clamped.
func Encode(l float32) uint8 {
	l = min(max(l, 0), 1)
	return toSRGB[int(l*float32(len(toSRGB)-1)+0.5)]
}
