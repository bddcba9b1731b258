package color

import "math"

// truncBias absorbs float error of the sRGB decode/encode round trip so that
// exact 8-bit inputs survive truncation (1.0 encodes to 0.99999994). Alpha
// never passes through the curve and is truncated without it.
const truncBias = 1.0 / 1024

// SRGBToLinear applies the sRGB decoding curve to a component in [0,1].
func SRGBToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return float32(math.Pow(float64((s+0.055)/1.055), 2.4))
}

// LinearToSRGB applies the sRGB encoding curve to a component in [0,1].
// The linear segment extends up to 0.04045, the threshold SRGBToLinear
// uses, so linear values in (0.0031308, 0.04045] encode brighter than the
// exact inverse would. Mip levels depend on this curve bit for bit.
func LinearToSRGB(l float32) float32 {
	if l <= 0.04045 {
		return l * 12.92
	}
	return 1.055*float32(math.Pow(float64(l), 1.0/2.4)) - 0.055
}

// DecodeSRGB8 converts an 8-bit sRGB color to normalized linear RGB with
// straight (not premultiplied) alpha.
func DecodeSRGB8(c ColorU8) ColorF32 {
	return ColorF32{
		R: DecodeChannel(c.R),
		G: DecodeChannel(c.G),
		B: DecodeChannel(c.B),
		A: float32(c.A) / 255.0,
	}
}

// EncodeSRGB8 converts a linear color with straight alpha back to 8-bit
// sRGB. Components are denormalized by truncation, not rounding.
func EncodeSRGB8(c ColorF32) ColorU8 {
	return ColorU8{
		R: truncate(LinearToSRGB(c.R), truncBias),
		G: truncate(LinearToSRGB(c.G), truncBias),
		B: truncate(LinearToSRGB(c.B), truncBias),
		A: truncate(c.A, 0),
	}
}

// truncate maps [0,1] to [0,255], adds bias in output steps and drops the
// fraction. NaN maps to 0.
func truncate(v, bias float32) uint8 {
	if !(v > 0) {
		return 0
	}
	s := v*255.0 + bias
	if s >= 255 {
		return 255
	}
	return uint8(s)
}
