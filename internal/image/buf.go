// Package image loads, converts and saves the RGBA8 sheets tiles are cut from.
//
// Every buffer in this package holds straight (not premultiplied) 8-bit RGBA
// in tightly packed rows, which is the layout the atlas builder consumes.
package image

import (
	"errors"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds is returned when a region lies outside the image.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// bytesPerPixel is the size of one RGBA8 pixel.
const bytesPerPixel = 4

// Buf is an RGBA8 image with straight alpha and no row padding.
type Buf struct {
	data   []byte
	width  int
	height int
}

// New creates a zeroed (transparent black) image.
func New(width, height int) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Buf{
		data:   make([]byte, width*height*bytesPerPixel),
		width:  width,
		height: height,
	}, nil
}

// FromRaw wraps existing RGBA8 data without copying.
func FromRaw(data []byte, width, height int) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	required := width * height * bytesPerPixel
	if len(data) < required {
		return nil, ErrDataTooSmall
	}
	return &Buf{data: data[:required], width: width, height: height}, nil
}

// Clone creates a deep copy of the image.
func (b *Buf) Clone() *Buf {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &Buf{data: data, width: b.width, height: b.height}
}

// Width returns the image width in pixels.
func (b *Buf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *Buf) Height() int {
	return b.height
}

// Stride returns the number of bytes per row.
func (b *Buf) Stride() int {
	return b.width * bytesPerPixel
}

// Data returns the raw pixel data slice.
func (b *Buf) Data() []byte {
	return b.data
}

// RowBytes returns the pixel data of row y, or nil if y is out of bounds.
func (b *Buf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.Stride()
	return b.data[start : start+b.Stride()]
}

// Crop copies a rectangular region into a new image.
func (b *Buf) Crop(x, y, width, height int) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if x < 0 || y < 0 || x+width > b.width || y+height > b.height {
		return nil, ErrOutOfBounds
	}
	dst, _ := New(width, height)
	for row := range height {
		start := ((y+row)*b.width + x) * bytesPerPixel
		copy(dst.RowBytes(row), b.data[start:start+width*bytesPerPixel])
	}
	return dst, nil
}

// Paste copies src into b with its top-left corner at (x, y).
func (b *Buf) Paste(src *Buf, x, y int) error {
	if x < 0 || y < 0 || x+src.width > b.width || y+src.height > b.height {
		return ErrOutOfBounds
	}
	for row := range src.height {
		copy(b.RowBytes(y + row)[x*bytesPerPixel:], src.RowBytes(row))
	}
	return nil
}

// ByteSize returns the total size of the image data in bytes.
func (b *Buf) ByteSize() int {
	return len(b.data)
}
