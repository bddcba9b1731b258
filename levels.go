package tileatlas

import (
	"math"
	"math/bits"
)

// MipLevelsMax returns the number of mip levels, including level 0, of a
// pyramid whose base tiles are size×size.
func MipLevelsMax(size uint32) uint32 {
	return uint32(bits.TrailingZeros32(size)) + 1
}

// MipLevelSize returns the tile edge length at the given level.
func MipLevelSize(size, level uint32) uint32 {
	if level >= 32 {
		return 0
	}
	return size >> level
}

// MipLevelByteLen returns the byte length of one RGBA8 frame at the given level.
func MipLevelByteLen(size, level uint32) uint32 {
	edge := MipLevelSize(size, level)
	return edge * edge * 4
}

// MipLevelsMax returns the number of mip levels, including level 0.
func (b *Builder) MipLevelsMax() uint32 {
	return MipLevelsMax(b.size)
}

// MipLevelSize returns the tile edge length at the given level.
func (b *Builder) MipLevelSize(level uint32) uint32 {
	return MipLevelSize(b.size, level)
}

// MipLevelByteLen returns the byte length of one frame at the given level.
func (b *Builder) MipLevelByteLen(level uint32) uint32 {
	return MipLevelByteLen(b.size, level)
}

// LevelRange is a half-open range of mip levels [Start, End).
type LevelRange struct {
	Start, End uint32
}

// AllLevels covers every mip level.
var AllLevels = LevelRange{Start: 0, End: math.MaxUint32}

// Levels returns the range [start, end).
func Levels(start, end uint32) LevelRange {
	return LevelRange{Start: start, End: end}
}

// Contains reports whether level lies in the range.
func (r LevelRange) Contains(level uint32) bool {
	return level >= r.Start && level < r.End
}

// DownsampleLevels generates the levels in r for every tile by downsampling
// the level above. Level 0 is never generated.
//
// Without force, only frames missing at a level are generated, resuming after
// the last frame already present, so repeated calls are idempotent. With
// force, existing frames at each level in r are discarded first.
func (b *Builder) DownsampleLevels(r LevelRange, force bool, d Downsampler) {
	maxLevels := b.MipLevelsMax()
	generated := 0
	b.eachTile(func(_, _ string, t *TileSet) {
		generated += downsampleTileSet(b.size, maxLevels, t, r, force, d)
	})
	Logger().Debug("tileatlas: downsampled levels",
		"start", r.Start, "end", r.End, "force", force, "frames", generated)
}

// DownsampleLevelsFor is DownsampleLevels restricted to one tile.
// Returns false if the tile does not exist.
func (b *Builder) DownsampleLevelsFor(groupID, tileID string, r LevelRange, force bool, d Downsampler) bool {
	t, ok := b.Tile(groupID, tileID)
	if !ok {
		return false
	}
	downsampleTileSet(b.size, b.MipLevelsMax(), t, r, force, d)
	return true
}

// downsampleTileSet fills levels of r in t and returns the number of frames
// generated. Level L-1 is only read and level L only receives freshly
// allocated buffers, so source and destination never alias.
func downsampleTileSet(size, maxLevels uint32, t *TileSet, r LevelRange, force bool, d Downsampler) int {
	generated := 0
	for level := max(r.Start, 1); level < r.End && level < maxLevels && int(level) < len(t.Levels); level++ {
		prev := t.Levels[level-1].Frames
		cur := &t.Levels[level]
		if force {
			cur.Frames = nil
		}
		if cur.Len() >= len(prev) {
			continue
		}

		srcEdge := int(MipLevelSize(size, level-1))
		dstLen := int(MipLevelByteLen(size, level))
		for _, src := range prev[cur.Len():] {
			dst := make([]byte, dstLen)
			d.Downsample(src, srcEdge, dst)
			cur.Frames = append(cur.Frames, dst)
			generated++
		}
	}
	return generated
}

// LimitLevels discards every level at or above maxLevel for all tiles.
// Tiles left without frames are removed.
func (b *Builder) LimitLevels(maxLevel uint32) {
	for _, g := range b.groups {
		for _, t := range g.TileSets {
			for l := int(maxLevel); l < len(t.Levels); l++ {
				t.Levels[l] = ImageSequence{}
			}
		}
	}
	b.collectAll()
}

// RemoveLevel clears one level of a tile and returns the removed sequence.
// The tile is removed once it has no frames on any level.
func (b *Builder) RemoveLevel(groupID, tileID string, level uint32) (ImageSequence, bool) {
	if level >= b.MipLevelsMax() {
		return ImageSequence{}, false
	}
	t, ok := b.Tile(groupID, tileID)
	if !ok || int(level) >= len(t.Levels) {
		return ImageSequence{}, false
	}
	removed := t.Levels[level]
	t.Levels[level] = ImageSequence{}
	b.collect(groupID, tileID)
	return removed, true
}

// RemoveLevels clears the levels in r of a tile.
// The tile is removed once it has no frames on any level.
func (b *Builder) RemoveLevels(groupID, tileID string, r LevelRange) {
	t, ok := b.Tile(groupID, tileID)
	if !ok {
		return
	}
	for level := r.Start; level < r.End && int(level) < len(t.Levels); level++ {
		t.Levels[level] = ImageSequence{}
	}
	b.collect(groupID, tileID)
}

// MipLevelsComplete reports whether every non-empty level of every tile has
// as many frames as its level 0.
func (b *Builder) MipLevelsComplete() bool {
	for _, g := range b.groups {
		for _, t := range g.TileSets {
			base := t.FrameCount()
			for _, l := range t.Levels[1:] {
				if l.Len() != 0 && l.Len() != base {
					return false
				}
			}
		}
	}
	return true
}

// FindMipLevelCommonMax returns the number of leading levels that every tile
// has in full: for each tile, the first level whose frame count differs from
// level 0 (or the level count if none does), minimized over all tiles.
// Levels below the result are safe to pack. Returns 0 for an empty builder.
func (b *Builder) FindMipLevelCommonMax() uint32 {
	common := uint32(0)
	first := true
	for _, g := range b.groups {
		for _, t := range g.TileSets {
			n := tileCompleteLevels(t)
			if first || n < common {
				common = n
				first = false
			}
		}
	}
	return common
}

// tileCompleteLevels returns the first level of t whose frame count diverges
// from level 0, or the number of levels if none does.
func tileCompleteLevels(t *TileSet) uint32 {
	base := t.FrameCount()
	for i := 1; i < len(t.Levels); i++ {
		if t.Levels[i].Len() != base {
			return uint32(i)
		}
	}
	return uint32(len(t.Levels))
}
