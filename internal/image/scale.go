package image

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Filter selects the resampling kernel used by Scale.
type Filter uint8

const (
	// FilterNearest keeps hard pixel edges, the right choice for pixel art.
	FilterNearest Filter = iota

	// FilterBilinear blends the four nearest samples.
	FilterBilinear

	// FilterCatmullRom is a sharp cubic kernel for photographic sheets.
	FilterCatmullRom
)

// String returns the filter name.
func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterBilinear:
		return "bilinear"
	case FilterCatmullRom:
		return "catmullrom"
	default:
		return fmt.Sprintf("Filter(%d)", f)
	}
}

// ParseFilter returns the filter with the given name.
func ParseFilter(name string) (Filter, error) {
	switch name {
	case "", "nearest":
		return FilterNearest, nil
	case "bilinear":
		return FilterBilinear, nil
	case "catmullrom":
		return FilterCatmullRom, nil
	default:
		return 0, fmt.Errorf("image: unknown filter %q", name)
	}
}

func (f Filter) scaler() draw.Scaler {
	switch f {
	case FilterBilinear:
		return draw.BiLinear
	case FilterCatmullRom:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

// Scale resamples the image to width×height.
//
// Interpolating filters work on premultiplied colors so fully transparent
// pixels do not tint their neighbors.
func (b *Buf) Scale(width, height int, f Filter) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if width == b.width && height == b.height {
		return b.Clone(), nil
	}

	rect := image.Rect(0, 0, width, height)
	if f == FilterNearest {
		dst, _ := New(width, height)
		draw.NearestNeighbor.Scale(dst.ToStdImage(), rect, b.ToStdImage(), b.ToStdImage().Rect, draw.Src, nil)
		return dst, nil
	}

	premul := image.NewRGBA(rect)
	f.scaler().Scale(premul, rect, b.ToStdImage(), b.ToStdImage().Rect, draw.Src, nil)
	return FromStdImage(premul)
}
