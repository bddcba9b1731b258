package tileatlas

import "fmt"

// SourceImage is a region to cut out of an RGBA8 source buffer.
//
// Pix is row-major RGBA8 data whose rows are RowWidth pixels wide. A block
// the size of the target mip level is copied starting at pixel Offset.
type SourceImage struct {
	Pix      []byte
	RowWidth uint32
	Offset   [2]uint32
}

// Insert replaces the frame sequence of a tile at the given mip level with
// one frame per image. Other levels of the tile are not touched.
//
// Panics if level is not below MipLevelsMax or if any image region reaches
// outside its source buffer.
func (b *Builder) Insert(groupID, tileID string, level uint32, images ...SourceImage) {
	levelCount := b.MipLevelsMax()
	if level >= levelCount {
		panic(fmt.Sprintf("tileatlas: insert at level %d, builder has %d levels", level, levelCount))
	}

	edge := int(b.MipLevelSize(level))
	frameLen := int(b.MipLevelByteLen(level))

	var frames [][]byte
	for _, img := range images {
		frames = append(frames, extractFrame(img, edge, frameLen))
	}

	t := b.tileSet(groupID, tileID)
	t.Levels[level] = ImageSequence{Frames: frames}
	if len(frames) == 0 {
		b.collect(groupID, tileID)
	}
}

// InsertSingle inserts a single frame cut from src at the given offset.
// See Insert.
func (b *Builder) InsertSingle(groupID, tileID string, level uint32, src []byte, srcWidth uint32, srcOffset [2]uint32) {
	b.Insert(groupID, tileID, level, SourceImage{Pix: src, RowWidth: srcWidth, Offset: srcOffset})
}

// InsertTileset slices src into a uniform grid described by settings and
// inserts one frame per cell, in row-major order with x varying fastest.
// See Insert.
func (b *Builder) InsertTileset(groupID, tileID string, level uint32, src []byte, srcWidth uint32, settings TileSetSettings) {
	tileSize := b.MipLevelSize(level)
	images := make([]SourceImage, 0, settings.Len())
	for i := range settings.Len() {
		images = append(images, SourceImage{
			Pix:      src,
			RowWidth: srcWidth,
			Offset:   settings.CellOffset(i, tileSize),
		})
	}
	b.Insert(groupID, tileID, level, images...)
}

// extractFrame copies an edge×edge block out of img into a new buffer.
func extractFrame(img SourceImage, edge, frameLen int) []byte {
	srcWidth := int(img.RowWidth)
	srcX, srcY := int(img.Offset[0]), int(img.Offset[1])

	// Rows are contiguous when the block spans the full source width.
	if srcX == 0 && srcWidth == edge {
		start := srcY * srcWidth * 4
		if start+frameLen > len(img.Pix) {
			panic(fmt.Sprintf("tileatlas: copy from image out of bounds (need %d bytes, have %d)",
				start+frameLen, len(img.Pix)))
		}
		dst := make([]byte, frameLen)
		copy(dst, img.Pix[start:start+frameLen])
		return dst
	}

	dst := make([]byte, frameLen)
	for row := range edge {
		copyRow(edge,
			img.Pix, srcWidth, srcX, srcY+row,
			dst, edge, 0, row)
	}
	return dst
}

// copyRow copies width pixels of row srcY starting at srcX into row dstY of
// dst starting at dstX. Both buffers are RGBA8 with the given row widths.
//
// Panics if either region is out of bounds.
func copyRow(
	width int,
	src []byte, srcWidth, srcX, srcY int,
	dst []byte, dstWidth, dstX, dstY int,
) {
	if srcX+width > srcWidth {
		panic("tileatlas: copy from image out of bounds (x-axis)")
	}
	srcStart := 4 * (srcY*srcWidth + srcX)
	srcEnd := srcStart + 4*width
	if srcEnd > len(src) {
		panic("tileatlas: copy from image out of bounds (y-axis)")
	}

	if dstX+width > dstWidth {
		panic("tileatlas: copy to image out of bounds (x-axis)")
	}
	dstStart := 4 * (dstY*dstWidth + dstX)
	dstEnd := dstStart + 4*width
	if dstEnd > len(dst) {
		panic("tileatlas: copy to image out of bounds (y-axis)")
	}

	copy(dst[dstStart:dstEnd], src[srcStart:srcEnd])
}
