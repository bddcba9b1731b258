package tileatlas

import "fmt"

// Entry locates a tile in the packed atlas: its level 0 frames occupy the
// contiguous slots [Index, Index+Count).
type Entry struct {
	Index uint16
	Count uint16
}

// Slot returns a reference to the first frame of the entry with the frame
// count filled in. Returns false if Index cannot be encoded or Count does
// not fit the 4-bit frame count of a slot.
func (e Entry) Slot() (Slot, bool) {
	if e.Count > 0xF {
		return EmptySlot, false
	}
	s, ok := NewSlot(e.Index)
	if !ok {
		return EmptySlot, false
	}
	return s.WithFrameCount(e.Count), true
}

// LookupGroup maps tile ids of one group to their entries.
type LookupGroup map[string]Entry

// Lookup maps group ids to their tiles.
type Lookup map[string]LookupGroup

// Group returns the entries of a group.
func (l Lookup) Group(groupID string) (LookupGroup, bool) {
	g, ok := l[groupID]
	return g, ok
}

// Entry returns the entry of a tile.
func (l Lookup) Entry(groupID, tileID string) (Entry, bool) {
	e, ok := l[groupID][tileID]
	return e, ok
}

// BuildLookup assigns every tile with level 0 frames a contiguous slot
// range, in the same order BuildPage places the frames.
//
// Panics if the atlas holds more frames than a 16-bit index can address.
func (b *Builder) BuildLookup() Lookup {
	lookup := make(Lookup)
	next := 0
	b.eachTile(func(groupID, tileID string, t *TileSet) {
		count := t.FrameCount()
		if count == 0 {
			return
		}
		if next+count > 0xFFFF {
			panic(fmt.Sprintf("tileatlas: atlas holds more than %d frames", 0xFFFF))
		}
		g, ok := lookup[groupID]
		if !ok {
			g = make(LookupGroup)
			lookup[groupID] = g
		}
		g[tileID] = Entry{Index: uint16(next), Count: uint16(count)}
		next += count
	})
	return lookup
}

// Atlas pairs a packed image with the lookup table addressing it. This is
// what a renderer needs to draw tiles by name.
type Atlas struct {
	Image  *Image
	Lookup Lookup
}

// Group returns the lookup entries of a group.
func (a *Atlas) Group(groupID string) (LookupGroup, bool) {
	return a.Lookup.Group(groupID)
}

// Entry returns the lookup entry of a tile.
func (a *Atlas) Entry(groupID, tileID string) (Entry, bool) {
	return a.Lookup.Entry(groupID, tileID)
}

// BuildAtlas builds the image with the given settings together with the
// lookup table. Panics if s fails Validate.
func (b *Builder) BuildAtlas(s ImageSettings) *Atlas {
	return &Atlas{
		Image:  b.BuildImageWithSettings(s),
		Lookup: b.BuildLookup(),
	}
}
