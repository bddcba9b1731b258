package tileatlas

// TileSetSettings describes a uniform grid of tiles inside a source sheet.
//
// The first cell starts at Offset; cells are separated by Spacing pixels and
// Count gives the number of cells along x and y.
type TileSetSettings struct {
	Offset  [2]uint32
	Spacing [2]uint32
	Count   [2]uint32
}

// NewTileSetSettings returns settings for a countX×countY grid without
// offset or spacing.
func NewTileSetSettings(countX, countY uint32) TileSetSettings {
	return TileSetSettings{Count: [2]uint32{countX, countY}}
}

// WithCount returns a copy with the given cell counts.
func (s TileSetSettings) WithCount(countX, countY uint32) TileSetSettings {
	s.Count = [2]uint32{countX, countY}
	return s
}

// WithOffset returns a copy with the given offset of the first cell.
func (s TileSetSettings) WithOffset(offsetX, offsetY uint32) TileSetSettings {
	s.Offset = [2]uint32{offsetX, offsetY}
	return s
}

// WithSpacing returns a copy with the given gap between cells.
func (s TileSetSettings) WithSpacing(spacingX, spacingY uint32) TileSetSettings {
	s.Spacing = [2]uint32{spacingX, spacingY}
	return s
}

// Len returns the number of cells in the grid.
func (s TileSetSettings) Len() uint32 {
	return s.Count[0] * s.Count[1]
}

// CellOffset returns the pixel offset of cell i for tiles of edge tileSize.
// Cells are numbered in row-major order.
func (s TileSetSettings) CellOffset(i, tileSize uint32) [2]uint32 {
	x := i % s.Count[0]
	y := i / s.Count[0]
	return [2]uint32{
		s.Offset[0] + x*(s.Spacing[0]+tileSize),
		s.Offset[1] + y*(s.Spacing[1]+tileSize),
	}
}

// TileSize derives the tile edge length from the dimensions of a sheet laid
// out with these settings. The result is the largest power of two that fits
// a cell on both axes, or 0 if no cell fits.
func (s TileSetSettings) TileSize(width, height uint32) uint32 {
	dims := [2]uint32{width, height}
	var edge uint32
	for i := range 2 {
		if s.Count[i] == 0 || dims[i] <= s.Offset[i] {
			return 0
		}
		// A sheet holds count cells and count-1 gaps, trailing gap optional.
		avail := uint64(dims[i]-s.Offset[i]) + uint64(s.Spacing[i])
		cell := avail / uint64(s.Count[i])
		if cell <= uint64(s.Spacing[i]) {
			return 0
		}
		cell -= uint64(s.Spacing[i])
		if i == 0 || uint32(cell) < edge {
			edge = uint32(cell)
		}
	}
	return floorPowerOfTwo(edge)
}

// Validate checks that the grid has at least one cell.
func (s TileSetSettings) Validate() error {
	if s.Count[0] == 0 {
		return &SettingsError{Field: "Count[0]", Reason: "must be at least 1"}
	}
	if s.Count[1] == 0 {
		return &SettingsError{Field: "Count[1]", Reason: "must be at least 1"}
	}
	return nil
}

// floorPowerOfTwo returns the largest power of two <= v, or 0 for 0.
func floorPowerOfTwo(v uint32) uint32 {
	if v == 0 {
		return 0
	}
	p := uint32(1)
	for p <= v/2 {
		p <<= 1
	}
	return p
}
