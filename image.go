package tileatlas

import "github.com/gogpu/gputypes"

// SamplerSettings describes how the atlas texture should be sampled.
// The builder never creates a sampler; the values are handed to the renderer.
type SamplerSettings struct {
	Label           string
	AddressModeU    gputypes.AddressMode
	AddressModeV    gputypes.AddressMode
	AddressModeW    gputypes.AddressMode
	MagFilter       gputypes.FilterMode
	MinFilter       gputypes.FilterMode
	MipmapFilter    gputypes.FilterMode
	LodMinClamp     float32
	LodMaxClamp     float32
	AnisotropyClamp uint16
}

// TextureDescriptor describes the array texture built from the atlas.
type TextureDescriptor struct {
	Label         string
	Size          gputypes.Extent3D
	MipLevelCount uint32
	SampleCount   uint32
	Dimension     gputypes.TextureDimension
	Format        gputypes.TextureFormat
	Usage         gputypes.TextureUsage
}

// TextureViewDescriptor describes the view the renderer binds.
// A zero count means "all remaining".
type TextureViewDescriptor struct {
	Dimension       gputypes.TextureViewDimension
	Aspect          gputypes.TextureAspect
	BaseMipLevel    uint32
	MipLevelCount   uint32
	BaseArrayLayer  uint32
	ArrayLayerCount uint32
}

// ImageSettings configures BuildImageWithSettings.
type ImageSettings struct {
	// Label is the debug label of the texture.
	Label string

	// Usage is the texture usage requested from the renderer.
	Usage gputypes.TextureUsage

	// Sampler is passed through to Image.Sampler.
	Sampler SamplerSettings
}

// DefaultImageSettings returns the settings used by BuildImage: a sampled
// texture, clamped at the edges, magnified with nearest filtering and
// minified with trilinear filtering.
func DefaultImageSettings() ImageSettings {
	return ImageSettings{
		Label: "tile_atlas_texture",
		Usage: gputypes.TextureUsageTextureBinding,
		Sampler: SamplerSettings{
			Label:           "tile_atlas_texture_sampler",
			AddressModeU:    gputypes.AddressModeClampToEdge,
			AddressModeV:    gputypes.AddressModeClampToEdge,
			AddressModeW:    gputypes.AddressModeClampToEdge,
			MagFilter:       gputypes.FilterModeNearest,
			MinFilter:       gputypes.FilterModeLinear,
			MipmapFilter:    gputypes.FilterModeLinear,
			LodMinClamp:     0,
			LodMaxClamp:     32,
			AnisotropyClamp: 1,
		},
	}
}

// Validate checks the sampler ranges.
func (s *ImageSettings) Validate() error {
	if s.Sampler.LodMinClamp < 0 {
		return &SettingsError{Field: "Sampler.LodMinClamp", Reason: "must be non-negative"}
	}
	if s.Sampler.LodMaxClamp < s.Sampler.LodMinClamp {
		return &SettingsError{Field: "Sampler.LodMaxClamp", Reason: "must be at least LodMinClamp"}
	}
	if s.Sampler.AnisotropyClamp < 1 {
		return &SettingsError{Field: "Sampler.AnisotropyClamp", Reason: "must be at least 1"}
	}
	return nil
}

// Image is the packed atlas ready for upload as a 2D array texture.
//
// Data is layer-major: all levels of page 0, then all levels of page 1, and
// so on. Each page level is a square RGBA8 image of edge TileSize·16 >> level.
type Image struct {
	Data     []byte
	TileSize uint32
	Texture  TextureDescriptor
	View     TextureViewDescriptor
	Sampler  SamplerSettings
}

// PageCount returns the number of array layers.
func (img *Image) PageCount() uint32 {
	return img.Texture.Size.DepthOrArrayLayers
}

// LevelCount returns the number of mip levels per page.
func (img *Image) LevelCount() uint32 {
	return img.Texture.MipLevelCount
}

// PageRange returns the byte range of one page at one level inside Data.
func (img *Image) PageRange(page, level uint32) (start, end int, ok bool) {
	return pageRange(img.TileSize, img.LevelCount(), img.PageCount(), page, level)
}

// Page returns the pixels of one page at one level.
func (img *Image) Page(page, level uint32) ([]byte, bool) {
	start, end, ok := img.PageRange(page, level)
	if !ok || end > len(img.Data) {
		return nil, false
	}
	return img.Data[start:end], true
}

// BuildImage packs the atlas with DefaultImageSettings.
func (b *Builder) BuildImage() *Image {
	return b.BuildImageWithSettings(DefaultImageSettings())
}

// BuildImageWithSettings packs every page at every level below
// FindMipLevelCommonMax into one buffer and describes it as an sRGB RGBA8
// 2D array texture with one layer per page.
//
// Panics with a *SettingsError if s fails Validate.
func (b *Builder) BuildImageWithSettings(s ImageSettings) *Image {
	if err := s.Validate(); err != nil {
		panic(err)
	}
	levelCount := b.FindMipLevelCommonMax()
	pageCount := b.PageCount()

	total := 0
	for l := range levelCount {
		total += int(b.PageLen(l))
	}
	data := make([]byte, 0, total*int(pageCount))
	for page := range pageCount {
		for level := range levelCount {
			data = b.BuildPage(data, level, page)
		}
	}

	Logger().Debug("tileatlas: built image",
		"pages", pageCount, "levels", levelCount, "bytes", len(data))

	return &Image{
		Data:     data,
		TileSize: b.size,
		Texture: TextureDescriptor{
			Label: s.Label,
			Size: gputypes.Extent3D{
				Width:              b.PageEdge(0),
				Height:             b.PageEdge(0),
				DepthOrArrayLayers: pageCount,
			},
			MipLevelCount: levelCount,
			SampleCount:   1,
			Dimension:     gputypes.TextureDimension2D,
			Format:        gputypes.TextureFormatRGBA8UnormSrgb,
			Usage:         s.Usage,
		},
		View: TextureViewDescriptor{
			Dimension: gputypes.TextureViewDimension2DArray,
			Aspect:    gputypes.TextureAspectAll,
		},
		Sampler: s.Sampler,
	}
}
