package image

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	// Registered decoders. Sheets are commonly exported as PNG, but editors
	// and older asset pipelines also produce the others.
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
)

// Load decodes the image file at path, detecting the format from its
// content. It returns the buffer and the format name.
func Load(path string) (*Buf, string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, "", fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode decodes an image in any registered format (PNG, JPEG, GIF, BMP,
// TIFF, WebP) and converts it to RGBA8.
func Decode(r io.Reader) (*Buf, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("image: decode: %w", err)
	}
	buf, err := FromStdImage(img)
	if err != nil {
		return nil, "", err
	}
	return buf, format, nil
}

// FromStdImage converts a standard library image to RGBA8 with straight
// alpha.
func FromStdImage(img image.Image) (*Buf, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	buf, err := New(width, height)
	if err != nil {
		return nil, err
	}

	// Fast path: already straight RGBA8.
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range height {
			start := (y+bounds.Min.Y-nrgba.Rect.Min.Y)*nrgba.Stride + (bounds.Min.X-nrgba.Rect.Min.X)*4
			copy(buf.RowBytes(y), nrgba.Pix[start:start+width*4])
		}
		return buf, nil
	}

	// Everything else goes through the draw package, which converts any
	// color model (paletted, gray, CMYK, YCbCr, premultiplied) to NRGBA.
	dst := &image.NRGBA{Pix: buf.data, Stride: buf.Stride(), Rect: image.Rect(0, 0, width, height)}
	draw.Draw(dst, dst.Rect, img, bounds.Min, draw.Src)
	return buf, nil
}

// ToStdImage returns an *image.NRGBA sharing the pixel data.
func (b *Buf) ToStdImage() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.data,
		Stride: b.Stride(),
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

// EncodePNG encodes the image as PNG to the given writer.
func (b *Buf) EncodePNG(w io.Writer) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, b.ToStdImage()); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// SavePNG saves the image as a PNG file.
func (b *Buf) SavePNG(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := b.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
