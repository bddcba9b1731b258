// Package color provides the sRGB and alpha math used to filter RGBA8 tiles.
package color

// ColorF32 represents a color with float32 components in [0,1].
// RGB components are in the color space indicated by context.
// Alpha is always linear (never gamma-encoded).
type ColorF32 struct {
	R, G, B, A float32
}

// ColorU8 represents a color with uint8 components in [0,255].
// RGB components are sRGB encoded, alpha is linear and not premultiplied.
type ColorU8 struct {
	R, G, B, A uint8
}

// ColorU8FromBytes reads a color from the first four bytes of p.
func ColorU8FromBytes(p []byte) ColorU8 {
	_ = p[3]
	return ColorU8{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// PutBytes writes the color into the first four bytes of p.
func (c ColorU8) PutBytes(p []byte) {
	_ = p[3]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// Premultiply scales the RGB components by alpha.
func (c ColorF32) Premultiply() ColorF32 {
	return ColorF32{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Unpremultiply divides the RGB components by alpha.
// A fully transparent color becomes transparent black.
func (c ColorF32) Unpremultiply() ColorF32 {
	if c.A <= 0 {
		return ColorF32{}
	}
	return ColorF32{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
}

// Midpoint returns the component-wise average of c and o.
func (c ColorF32) Midpoint(o ColorF32) ColorF32 {
	return ColorF32{
		R: (c.R + o.R) * 0.5,
		G: (c.G + o.G) * 0.5,
		B: (c.B + o.B) * 0.5,
		A: (c.A + o.A) * 0.5,
	}
}

// Mean4 averages four colors as two nested midpoints.
func Mean4(a, b, c, d ColorF32) ColorF32 {
	return a.Midpoint(b).Midpoint(c.Midpoint(d))
}
