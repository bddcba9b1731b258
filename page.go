package tileatlas

// Page geometry. Every page is a square grid of tiles at every mip level.
const (
	// TilesPerPageEdge is the number of tiles along one edge of a page.
	TilesPerPageEdge = 16

	// TilesPerPage is the number of tile slots in one page.
	TilesPerPage = TilesPerPageEdge * TilesPerPageEdge
)

// ImageCount returns the number of level 0 frames across all tiles.
func (b *Builder) ImageCount() uint32 {
	n := 0
	for _, g := range b.groups {
		for _, t := range g.TileSets {
			n += t.FrameCount()
		}
	}
	return uint32(n)
}

// PageCount returns the number of pages needed to hold every level 0 frame.
func (b *Builder) PageCount() uint32 {
	return (b.ImageCount() + TilesPerPage - 1) / TilesPerPage
}

// PageEdge returns the edge length in pixels of a page at the given level.
func (b *Builder) PageEdge(level uint32) uint32 {
	return b.MipLevelSize(level) * TilesPerPageEdge
}

// PageLen returns the byte length of one page at the given level.
func (b *Builder) PageLen(level uint32) uint32 {
	return b.MipLevelByteLen(level) * TilesPerPage
}

// BuildPage appends one page of the given level to dst and returns the
// extended slice.
//
// All frames at level are enumerated groups → tiles → frames in lookup
// order; the page holds frames [page·256, page·256+256). Frame i of the
// page lands in grid cell (i mod 16, i div 16). Unused cells stay zero.
func (b *Builder) BuildPage(dst []byte, level, page uint32) []byte {
	pageStart := len(dst)
	pageLen := int(b.PageLen(level))
	dst = append(dst, make([]byte, pageLen)...)
	dstPage := dst[pageStart : pageStart+pageLen]

	edge := int(b.MipLevelSize(level))
	pageEdge := edge * TilesPerPageEdge
	first := int(page) * TilesPerPage

	idx := 0
	b.eachTile(func(_, _ string, t *TileSet) {
		if int(level) >= len(t.Levels) {
			return
		}
		for _, src := range t.Levels[level].Frames {
			slot := idx - first
			idx++
			if slot < 0 || slot >= TilesPerPage {
				continue
			}
			x := (slot & 0x0F) * edge
			y := (slot >> 4) * edge
			for row := range edge {
				copyRow(edge,
					src, edge, 0, row,
					dstPage, pageEdge, x, y+row)
			}
		}
	})
	return dst
}

// PageRangeBytes returns the byte range [start, end) of one page at one mip
// level inside the buffer produced by BuildImage.
//
// The buffer is laid out page by page; within a page, levels follow each
// other from level 0 up to FindMipLevelCommonMax. Returns false if page or
// level is outside that layout.
func (b *Builder) PageRangeBytes(page, level uint32) (start, end int, ok bool) {
	return pageRange(b.size, b.FindMipLevelCommonMax(), b.PageCount(), page, level)
}

// pageRange computes the byte range of (page, level) in a layer-major image
// of pageCount pages with levelCount levels each.
func pageRange(size, levelCount, pageCount, page, level uint32) (start, end int, ok bool) {
	if level >= levelCount || page >= pageCount {
		return 0, 0, false
	}
	var pageSpan, inner int
	for l := range levelCount {
		n := int(MipLevelByteLen(size, l)) * TilesPerPage
		pageSpan += n
		if l < level {
			inner += n
		}
	}
	start = int(page)*pageSpan + inner
	end = start + int(MipLevelByteLen(size, level))*TilesPerPage
	return start, end, true
}
