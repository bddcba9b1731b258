package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/gogpu/tileatlas"
)

// zstdMagic starts every zstd frame and so every compressed atlas file.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// readAtlas reads an atlas file written compressed or uncompressed.
func readAtlas(path string) (b *tileatlas.Builder, compressed bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	head, _ := r.Peek(len(zstdMagic))
	if bytes.Equal(head, zstdMagic) {
		b, err = tileatlas.ReadCompressedFrom(r)
		compressed = true
	} else {
		b, err = tileatlas.ReadUncompressedFrom(r)
	}
	if err != nil {
		return nil, compressed, fmt.Errorf("%s: %w", path, err)
	}
	return b, compressed, nil
}

// writeAtlas writes b to path, replacing any existing file.
func writeAtlas(b *tileatlas.Builder, path string, compress bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if compress {
		err = b.WriteCompressedTo(w)
	} else {
		err = b.WriteUncompressedTo(w)
	}
	if err != nil {
		return err
	}
	return w.Flush()
}
