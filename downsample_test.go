package tileatlas

import (
	"bytes"
	"testing"
)

func TestBilinearSRGB_Solid(t *testing.T) {
	tests := []struct {
		name  string
		color [4]byte
	}{
		{"white", [4]byte{255, 255, 255, 255}},
		{"black", [4]byte{0, 0, 0, 255}},
		{"red", [4]byte{255, 0, 0, 255}},
		{"mid gray", [4]byte{128, 128, 128, 255}},
		{"dark", [4]byte{3, 7, 11, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.color
			src := solid(4, c[0], c[1], c[2], c[3])
			dst := make([]byte, 2*2*4)
			BilinearSRGB{}.Downsample(src, 4, dst)
			if want := solid(2, c[0], c[1], c[2], c[3]); !bytes.Equal(dst, want) {
				t.Errorf("Downsample(%v) = %v", c, dst[:4])
			}
		})
	}
}

func TestBilinearSRGB_Transparent(t *testing.T) {
	src := solid(2, 200, 100, 50, 0)
	dst := make([]byte, 4)
	BilinearSRGB{}.Downsample(src, 2, dst)
	if want := []byte{0, 0, 0, 0}; !bytes.Equal(dst, want) {
		t.Errorf("fully transparent block = %v, want %v", dst, want)
	}
}

func TestBilinearSRGB_NoColorBleed(t *testing.T) {
	// Two opaque red pixels next to two transparent blue ones.
	src := []byte{
		255, 0, 0, 255, 0, 0, 255, 0,
		0, 0, 255, 0, 255, 0, 0, 255,
	}
	dst := make([]byte, 4)
	BilinearSRGB{}.Downsample(src, 2, dst)
	if want := []byte{255, 0, 0, 127}; !bytes.Equal(dst, want) {
		t.Errorf("Downsample = %v, want %v", dst, want)
	}
}

func TestBilinearSRGB_AlphaTruncates(t *testing.T) {
	// The alphas average to exactly 128, which float32 lands just below.
	src := []byte{
		0, 0, 0, 120, 0, 0, 0, 121,
		0, 0, 0, 120, 0, 0, 0, 151,
	}
	dst := make([]byte, 4)
	BilinearSRGB{}.Downsample(src, 2, dst)
	if want := []byte{0, 0, 0, 127}; !bytes.Equal(dst, want) {
		t.Errorf("Downsample = %v, want %v", dst, want)
	}
}

func TestBilinearSRGB_LinearLight(t *testing.T) {
	// A black and white checker averages to 50% linear light, which is
	// much brighter than the sRGB byte average of 127.
	src := []byte{
		0, 0, 0, 255, 255, 255, 255, 255,
		255, 255, 255, 255, 0, 0, 0, 255,
	}
	dst := make([]byte, 4)
	BilinearSRGB{}.Downsample(src, 2, dst)
	if want := []byte{187, 187, 187, 255}; !bytes.Equal(dst, want) {
		t.Errorf("Downsample = %v, want %v", dst, want)
	}
}

func TestBilinearSRGB_BlockLayout(t *testing.T) {
	// Each 2×2 block of a 4×4 source has its own color.
	colors := [4][4]byte{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
		{255, 255, 255, 255},
	}
	src := make([]byte, 4*4*4)
	for y := range 4 {
		for x := range 4 {
			block := (y/2)*2 + x/2
			copy(src[(y*4+x)*4:], colors[block][:])
		}
	}
	dst := make([]byte, 2*2*4)
	BilinearSRGB{}.Downsample(src, 4, dst)
	for i, want := range colors {
		if got := pixelAt(dst, 2, i%2, i/2); got != want {
			t.Errorf("block %d = %v, want %v", i, got, want)
		}
	}
}

func TestBilinearSRGB_Panics(t *testing.T) {
	d := BilinearSRGB{}
	mustPanic(t, "odd edge", func() { d.Downsample(make([]byte, 9*4), 3, make([]byte, 4)) })
	mustPanic(t, "edge 1", func() { d.Downsample(make([]byte, 4), 1, make([]byte, 4)) })
	mustPanic(t, "short source", func() { d.Downsample(make([]byte, 8), 2, make([]byte, 4)) })
	mustPanic(t, "short destination", func() { d.Downsample(make([]byte, 64), 4, make([]byte, 8)) })
}

func TestDownsamplerFunc(t *testing.T) {
	var gotEdge int
	f := DownsamplerFunc(func(_ []byte, srcEdge int, dst []byte) {
		gotEdge = srcEdge
		dst[0] = 42
	})
	dst := make([]byte, 4)
	var d Downsampler = f
	d.Downsample(make([]byte, 16), 2, dst)
	if gotEdge != 2 || dst[0] != 42 {
		t.Errorf("DownsamplerFunc not called through: edge %d, dst %v", gotEdge, dst)
	}
}

func BenchmarkBilinearSRGB(b *testing.B) {
	src := gradient(256, 256, 17)
	dst := make([]byte, 128*128*4)
	b.SetBytes(int64(len(src)))
	b.ReportAllocs()
	for b.Loop() {
		BilinearSRGB{}.Downsample(src, 256, dst)
	}
}
