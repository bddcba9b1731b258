package tileatlas

import (
	"fmt"

	"github.com/gogpu/tileatlas/internal/color"
)

// Downsampler halves a square RGBA8 image.
//
// Downsample reads src, an srcEdge×srcEdge image, and writes the
// (srcEdge/2)×(srcEdge/2) result into dst, which is already sized to
// (srcEdge/2)²·4 bytes. srcEdge is even and at least 2.
type Downsampler interface {
	Downsample(src []byte, srcEdge int, dst []byte)
}

// DownsamplerFunc adapts a function to the Downsampler interface.
type DownsamplerFunc func(src []byte, srcEdge int, dst []byte)

// Downsample calls f(src, srcEdge, dst).
func (f DownsamplerFunc) Downsample(src []byte, srcEdge int, dst []byte) {
	f(src, srcEdge, dst)
}

// BilinearSRGB is a 2×2 box filter that averages in linear light with
// premultiplied alpha.
//
// For every 2×2 block the samples are decoded from sRGB to linear, multiplied
// by alpha, averaged, divided by the averaged alpha and encoded back to sRGB.
// Averaging raw sRGB bytes would darken edges and bleed the color of fully
// transparent pixels into visible ones.
type BilinearSRGB struct{}

// Downsample implements Downsampler.
func (BilinearSRGB) Downsample(src []byte, srcEdge int, dst []byte) {
	checkDownsampleArgs(src, srcEdge, dst)

	dstEdge := srcEdge / 2
	stride := srcEdge * 4
	for y := range dstEdge {
		row := 2 * y * stride
		for x := range dstEdge {
			s := row + 8*x
			px := filterBlock(
				src[s:s+4], src[s+4:s+8],
				src[s+stride:s+stride+4], src[s+stride+4:s+stride+8],
			)
			px.PutBytes(dst[(y*dstEdge+x)*4:])
		}
	}
}

// filterBlock combines four sRGB samples into one.
func filterBlock(p0, p1, p2, p3 []byte) color.ColorU8 {
	s0 := color.DecodeSRGB8(color.ColorU8FromBytes(p0)).Premultiply()
	s1 := color.DecodeSRGB8(color.ColorU8FromBytes(p1)).Premultiply()
	s2 := color.DecodeSRGB8(color.ColorU8FromBytes(p2)).Premultiply()
	s3 := color.DecodeSRGB8(color.ColorU8FromBytes(p3)).Premultiply()
	return color.EncodeSRGB8(color.Mean4(s0, s1, s2, s3).Unpremultiply())
}

func checkDownsampleArgs(src []byte, srcEdge int, dst []byte) {
	if srcEdge < 2 || srcEdge%2 != 0 {
		panic(fmt.Sprintf("tileatlas: cannot downsample edge length %d", srcEdge))
	}
	if len(src) < srcEdge*srcEdge*4 {
		panic(fmt.Sprintf("tileatlas: downsample source has %d bytes, need %d", len(src), srcEdge*srcEdge*4))
	}
	dstEdge := srcEdge / 2
	if len(dst) < dstEdge*dstEdge*4 {
		panic(fmt.Sprintf("tileatlas: downsample destination has %d bytes, need %d", len(dst), dstEdge*dstEdge*4))
	}
}
