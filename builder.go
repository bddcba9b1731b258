package tileatlas

import (
	"fmt"
	"maps"
	"slices"
)

// ImageSequence is the ordered list of frames of one tile at one mip level.
// Every frame holds exactly MipLevelByteLen(level) bytes of RGBA8 pixels in
// row-major order.
type ImageSequence struct {
	Frames [][]byte
}

// Len returns the number of frames in the sequence.
func (s ImageSequence) Len() int {
	return len(s.Frames)
}

// TileSet holds one image sequence per mip level of a single tile.
// The number of levels is fixed when the tile is created.
type TileSet struct {
	Levels []ImageSequence
}

func newTileSet(levelCount uint32) *TileSet {
	return &TileSet{Levels: make([]ImageSequence, levelCount)}
}

// FrameCount returns the number of level 0 frames.
func (t *TileSet) FrameCount() int {
	if len(t.Levels) == 0 {
		return 0
	}
	return t.Levels[0].Len()
}

// Level returns the sequence at the given level.
// Returns false if level is out of range.
func (t *TileSet) Level(level uint32) (ImageSequence, bool) {
	if int(level) >= len(t.Levels) {
		return ImageSequence{}, false
	}
	return t.Levels[level], true
}

// isEmpty reports whether the tile holds no frames on any level.
func (t *TileSet) isEmpty() bool {
	for _, l := range t.Levels {
		if l.Len() > 0 {
			return false
		}
	}
	return true
}

// Group is a named namespace of tiles.
type Group struct {
	TileSets map[string]*TileSet
}

func newGroup() *Group {
	return &Group{TileSets: make(map[string]*TileSet)}
}

// Tile returns the tile with the given id.
func (g *Group) Tile(tileID string) (*TileSet, bool) {
	t, ok := g.TileSets[tileID]
	return t, ok
}

// TileIDs returns the tile ids of the group in lexicographic order.
func (g *Group) TileIDs() []string {
	return slices.Sorted(maps.Keys(g.TileSets))
}

// Builder accumulates a mip pyramid of tiles and builds atlases from it.
//
// Groups, tiles and levels are created lazily on first insertion and removed
// again as soon as they hold no frames. The zero value is not usable; create
// builders with New.
type Builder struct {
	size   uint32
	groups map[string]*Group
}

// MaxTileSize is the largest supported level 0 tile edge length. Frame byte
// lengths of larger tiles do not fit in 32 bits.
const MaxTileSize = 1 << 14

// ValidTileSize reports whether size is a power of two no larger than
// MaxTileSize.
func ValidTileSize(size uint32) bool {
	return size != 0 && size <= MaxTileSize && size&(size-1) == 0
}

// New creates a builder whose level 0 tiles are size×size pixels.
// Panics if size is not a power of two or exceeds MaxTileSize.
func New(size uint32) *Builder {
	if !ValidTileSize(size) {
		panic(fmt.Sprintf("tileatlas: invalid tile size %d", size))
	}
	return &Builder{
		size:   size,
		groups: make(map[string]*Group),
	}
}

// Size returns the level 0 tile edge length in pixels.
func (b *Builder) Size() uint32 {
	return b.size
}

// Group returns the group with the given id.
func (b *Builder) Group(groupID string) (*Group, bool) {
	g, ok := b.groups[groupID]
	return g, ok
}

// Tile returns the tile with the given id in the given group.
func (b *Builder) Tile(groupID, tileID string) (*TileSet, bool) {
	g, ok := b.groups[groupID]
	if !ok {
		return nil, false
	}
	return g.Tile(tileID)
}

// GroupIDs returns the group ids in lexicographic order.
func (b *Builder) GroupIDs() []string {
	return slices.Sorted(maps.Keys(b.groups))
}

// Len returns the number of tiles across all groups.
func (b *Builder) Len() int {
	n := 0
	for _, g := range b.groups {
		n += len(g.TileSets)
	}
	return n
}

// IsEmpty reports whether the builder holds no tiles.
func (b *Builder) IsEmpty() bool {
	return len(b.groups) == 0
}

// tileSet returns the tile for writing, creating the group and tile if needed.
func (b *Builder) tileSet(groupID, tileID string) *TileSet {
	g, ok := b.groups[groupID]
	if !ok {
		g = newGroup()
		b.groups[groupID] = g
	}
	t, ok := g.TileSets[tileID]
	if !ok {
		t = newTileSet(b.MipLevelsMax())
		g.TileSets[tileID] = t
	}
	return t
}

// eachTile calls fn for every tile, groups then tiles in lexicographic order.
// This order defines lookup indices and page placement.
func (b *Builder) eachTile(fn func(groupID, tileID string, t *TileSet)) {
	for _, groupID := range b.GroupIDs() {
		g := b.groups[groupID]
		for _, tileID := range g.TileIDs() {
			fn(groupID, tileID, g.TileSets[tileID])
		}
	}
}

// collect removes the tile if it is empty, and its group if that is empty.
func (b *Builder) collect(groupID, tileID string) {
	g, ok := b.groups[groupID]
	if !ok {
		return
	}
	if t, ok := g.TileSets[tileID]; ok && t.isEmpty() {
		delete(g.TileSets, tileID)
	}
	if len(g.TileSets) == 0 {
		delete(b.groups, groupID)
	}
}

// collectAll applies collect to every tile.
func (b *Builder) collectAll() {
	for groupID, g := range b.groups {
		for tileID, t := range g.TileSets {
			if t.isEmpty() {
				delete(g.TileSets, tileID)
			}
		}
		if len(g.TileSets) == 0 {
			delete(b.groups, groupID)
		}
	}
}

// Merge moves every tile of other into b, replacing tiles that exist in both.
// other must not be used afterwards. Merging b into itself is a no-op.
//
// Panics if other holds tiles of a different size.
func (b *Builder) Merge(other *Builder) {
	if other == nil || other == b || other.IsEmpty() {
		return
	}
	if other.size != b.size {
		panic(fmt.Sprintf("tileatlas: merge of size %d into size %d", other.size, b.size))
	}
	for groupID, src := range other.groups {
		dst, ok := b.groups[groupID]
		if !ok {
			b.groups[groupID] = src
			continue
		}
		maps.Copy(dst.TileSets, src.TileSets)
	}
	other.groups = make(map[string]*Group)
}

// Remove deletes a tile and returns it. The group is removed as well once it
// has no tiles left.
func (b *Builder) Remove(groupID, tileID string) (*TileSet, bool) {
	g, ok := b.groups[groupID]
	if !ok {
		return nil, false
	}
	t, ok := g.TileSets[tileID]
	if ok {
		delete(g.TileSets, tileID)
	}
	if len(g.TileSets) == 0 {
		delete(b.groups, groupID)
	}
	return t, ok
}

// Clone returns a deep copy of the builder.
func (b *Builder) Clone() *Builder {
	c := New(b.size)
	for groupID, g := range b.groups {
		cg := newGroup()
		for tileID, t := range g.TileSets {
			ct := &TileSet{Levels: make([]ImageSequence, len(t.Levels))}
			for i, l := range t.Levels {
				if l.Len() == 0 {
					continue
				}
				frames := make([][]byte, len(l.Frames))
				for j, f := range l.Frames {
					frames[j] = slices.Clone(f)
				}
				ct.Levels[i] = ImageSequence{Frames: frames}
			}
			cg.TileSets[tileID] = ct
		}
		c.groups[groupID] = cg
	}
	return c
}
