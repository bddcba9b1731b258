package tileatlas

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// compressionWindowSize is the zstd window used for the compressed format.
const compressionWindowSize = 8 << 20 // 8 MiB

// compressionLevel is fixed so that output only depends on the input.
const compressionLevel = zstd.SpeedBetterCompression

// WriteCompressedTo writes the encoded builder to w through a zstd stream.
func (b *Builder) WriteCompressedTo(w io.Writer) error {
	cw := &countingWriter{w: w}
	enc, err := zstd.NewWriter(cw,
		zstd.WithWindowSize(compressionWindowSize),
		zstd.WithEncoderLevel(compressionLevel),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return fmt.Errorf("tileatlas: create compressor: %w", err)
	}

	n, err := b.encode(enc)
	if err != nil {
		_ = enc.Close()
		return fmt.Errorf("tileatlas: write compressed atlas: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("tileatlas: write compressed atlas: %w", err)
	}

	Logger().Debug("tileatlas: wrote atlas",
		"bytes", n, "compressed", true, "compressed_bytes", cw.n)
	return nil
}

// ReadCompressedFrom reads a builder written by WriteCompressedTo.
// Failures of the reader or the decompressor are ReadErrorIO, invalid
// decompressed content is ReadErrorDecode.
func ReadCompressedFrom(r io.Reader) (*Builder, error) {
	dec, err := zstd.NewReader(r,
		zstd.WithDecoderMaxWindow(compressionWindowSize),
		zstd.WithDecoderConcurrency(1),
	)
	if err != nil {
		return nil, ioError(err)
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, ioError(err)
	}
	return decodeBuilder(data)
}

// countingWriter counts bytes passed to w.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
