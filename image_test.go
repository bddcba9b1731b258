package tileatlas

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestDefaultImageSettings(t *testing.T) {
	s := DefaultImageSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if s.Usage != gputypes.TextureUsageTextureBinding {
		t.Errorf("Usage = %v", s.Usage)
	}
	if s.Sampler.MagFilter != gputypes.FilterModeNearest {
		t.Errorf("MagFilter = %v, want nearest", s.Sampler.MagFilter)
	}
	if s.Sampler.MinFilter != gputypes.FilterModeLinear || s.Sampler.MipmapFilter != gputypes.FilterModeLinear {
		t.Error("minification is not trilinear")
	}
	if s.Sampler.AddressModeU != gputypes.AddressModeClampToEdge {
		t.Errorf("AddressModeU = %v", s.Sampler.AddressModeU)
	}
}

func TestImageSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ImageSettings)
		field  string
	}{
		{"negative lod", func(s *ImageSettings) { s.Sampler.LodMinClamp = -1 }, "Sampler.LodMinClamp"},
		{"inverted lod", func(s *ImageSettings) { s.Sampler.LodMaxClamp = -0.5; s.Sampler.LodMinClamp = 0 }, "Sampler.LodMaxClamp"},
		{"no anisotropy", func(s *ImageSettings) { s.Sampler.AnisotropyClamp = 0 }, "Sampler.AnisotropyClamp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultImageSettings()
			tt.modify(&s)
			var se *SettingsError
			if err := s.Validate(); !errors.As(err, &se) || se.Field != tt.field {
				t.Errorf("Validate() = %v, want SettingsError for %s", err, tt.field)
			}
		})
	}
}

func TestBuildImage_Descriptors(t *testing.T) {
	b := New(8)
	insertFrames(b, "g", "t", 0, TilesPerPage+1)
	b.DownsampleLevels(AllLevels, false, BilinearSRGB{})

	img := b.BuildImage()
	tex := img.Texture
	if tex.Size.Width != 128 || tex.Size.Height != 128 || tex.Size.DepthOrArrayLayers != 2 {
		t.Errorf("Size = %+v", tex.Size)
	}
	if tex.MipLevelCount != 4 || img.LevelCount() != 4 {
		t.Errorf("MipLevelCount = %d, want 4", tex.MipLevelCount)
	}
	if img.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2", img.PageCount())
	}
	if tex.Format != gputypes.TextureFormatRGBA8UnormSrgb {
		t.Errorf("Format = %v", tex.Format)
	}
	if tex.Dimension != gputypes.TextureDimension2D {
		t.Errorf("Dimension = %v", tex.Dimension)
	}
	if img.View.Dimension != gputypes.TextureViewDimension2DArray {
		t.Errorf("View.Dimension = %v", img.View.Dimension)
	}
	if tex.Label != "tile_atlas_texture" {
		t.Errorf("Label = %q", tex.Label)
	}

	want := 0
	for l := range uint32(4) {
		want += int(b.PageLen(l))
	}
	want *= 2
	if len(img.Data) != want {
		t.Errorf("len(Data) = %d, want %d", len(img.Data), want)
	}
}

func TestBuildImage_LayerMajor(t *testing.T) {
	b := New(2)
	insertFrames(b, "g", "t", 0, TilesPerPage+1)
	b.DownsampleLevels(AllLevels, false, BilinearSRGB{})
	img := b.BuildImage()

	for page := range img.PageCount() {
		for level := range img.LevelCount() {
			got, ok := img.Page(page, level)
			if !ok {
				t.Fatalf("Page(%d, %d) not ok", page, level)
			}
			if want := b.BuildPage(nil, level, page); !bytes.Equal(got, want) {
				t.Errorf("Page(%d, %d) differs from BuildPage", page, level)
			}
			start, end, _ := img.PageRange(page, level)
			wantStart, wantEnd, _ := b.PageRangeBytes(page, level)
			if start != wantStart || end != wantEnd {
				t.Errorf("PageRange(%d, %d) = [%d, %d), builder says [%d, %d)",
					page, level, start, end, wantStart, wantEnd)
			}
		}
	}
	if _, ok := img.Page(2, 0); ok {
		t.Error("Page past PageCount reported ok")
	}
}

func TestBuildImage_StopsAtCommonLevel(t *testing.T) {
	b := New(4)
	insertFrames(b, "g", "full", 0, 1)
	b.DownsampleLevels(AllLevels, false, BilinearSRGB{})
	insertFrames(b, "g", "base", 1, 1)

	img := b.BuildImage()
	if img.LevelCount() != 1 {
		t.Errorf("LevelCount() = %d, want 1", img.LevelCount())
	}
	if len(img.Data) != int(b.PageLen(0)) {
		t.Errorf("len(Data) = %d, want %d", len(img.Data), b.PageLen(0))
	}
}

func TestBuildImage_Empty(t *testing.T) {
	img := New(4).BuildImage()
	if len(img.Data) != 0 || img.PageCount() != 0 || img.LevelCount() != 0 {
		t.Errorf("empty builder image: %d bytes, %d pages, %d levels",
			len(img.Data), img.PageCount(), img.LevelCount())
	}
}

func TestBuildImageWithSettings(t *testing.T) {
	b := New(2)
	insertFrames(b, "g", "t", 0, 1)

	s := DefaultImageSettings()
	s.Label = "terrain"
	s.Usage |= gputypes.TextureUsageCopyDst
	s.Sampler.MagFilter = gputypes.FilterModeLinear
	img := b.BuildImageWithSettings(s)

	if img.Texture.Label != "terrain" {
		t.Errorf("Label = %q", img.Texture.Label)
	}
	if img.Texture.Usage&gputypes.TextureUsageCopyDst == 0 {
		t.Error("usage flags not passed through")
	}
	if img.Sampler.MagFilter != gputypes.FilterModeLinear {
		t.Error("sampler not passed through")
	}
	if img.TileSize != 2 {
		t.Errorf("TileSize = %d, want 2", img.TileSize)
	}
}

func TestBuildImageWithSettings_Invalid(t *testing.T) {
	b := New(2)
	insertFrames(b, "g", "t", 0, 1)

	s := DefaultImageSettings()
	s.Sampler.LodMaxClamp = -1
	defer func() {
		var se *SettingsError
		if err, _ := recover().(error); !errors.As(err, &se) || se.Field != "Sampler.LodMaxClamp" {
			t.Errorf("recovered %v, want SettingsError for Sampler.LodMaxClamp", err)
		}
	}()
	b.BuildImageWithSettings(s)
}
