package main

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/tileatlas"
	"github.com/gogpu/tileatlas/internal/cache"
	"github.com/gogpu/tileatlas/internal/image"
)

// sheetRef is the handle a manifest entry is queued with.
type sheetRef struct {
	groupID string
	entry   TileEntry
}

// sheetFailure records why a queued sheet could not be provided.
type sheetFailure struct {
	ref sheetRef
	err error
}

func (f sheetFailure) Error() string {
	return fmt.Sprintf("group %q tile %q (%s): %v", f.ref.groupID, f.ref.entry.ID, f.ref.entry.Source, f.err)
}

func (f sheetFailure) Unwrap() error { return f.err }

// sheetSource decodes sheets for a build queue. Decoded files are cached by
// path, so a sheet shared by several tiles is read once.
//
// The first sheet fixes the tile size unless the manifest sets one. Sheets
// whose cells have another size are resampled to it cell by cell, keeping
// their offset and spacing.
type sheetSource struct {
	sheets   *cache.Cache[string, *image.Buf]
	filter   image.Filter
	tileSize uint32
	failures []sheetFailure
	log      *slog.Logger
}

func newSheetSource(m *Manifest, cacheBytes int64, log *slog.Logger) (*sheetSource, error) {
	f, err := image.ParseFilter(m.Filter)
	if err != nil {
		return nil, err
	}
	return &sheetSource{
		sheets: cache.New[string, *image.Buf](cacheBytes, func(b *image.Buf) int64 {
			return int64(b.ByteSize())
		}),
		filter:   f,
		tileSize: m.TileSize,
		log:      log,
	}, nil
}

// Image implements tileatlas.ImageSource.
func (s *sheetSource) Image(ref sheetRef) ([]byte, uint32, uint32, bool) {
	buf, err := s.prepare(ref.entry)
	if err != nil {
		s.failures = append(s.failures, sheetFailure{ref: ref, err: err})
		return nil, 0, 0, false
	}
	return buf.Data(), uint32(buf.Width()), uint32(buf.Height()), true
}

// prepare loads the sheet of e and brings its cells to the tile size.
func (s *sheetSource) prepare(e TileEntry) (*image.Buf, error) {
	buf, err := s.sheets.GetOrCreate(e.Source, func() (*image.Buf, error) {
		b, format, err := image.Load(e.Source)
		if err != nil {
			return nil, err
		}
		s.log.Debug("decoded sheet", "path", e.Source, "format", format,
			"width", b.Width(), "height", b.Height())
		return b, nil
	})
	if err != nil {
		return nil, err
	}

	settings := e.Settings()
	w, h := uint32(buf.Width()), uint32(buf.Height())
	if edge, ok := cellEdge(settings, w, h); ok && (s.tileSize == 0 || edge == s.tileSize) {
		s.tileSize = edge
		return buf, nil
	}
	if s.tileSize == 0 {
		return nil, fmt.Errorf("%dx%d sheet does not split into %dx%d square power of two cells; set tile_size to resample",
			w, h, e.Count[0], e.Count[1])
	}

	cell, ok := cellDims(settings, w, h)
	if !ok {
		return nil, fmt.Errorf("%dx%d sheet has no room for %dx%d cells at offset %v with spacing %v",
			w, h, e.Count[0], e.Count[1], e.Offset, e.Spacing)
	}
	// The cached sheet is only read from.
	out, err := s.resample(buf, settings, cell)
	if err != nil {
		return nil, err
	}
	s.log.Debug("resampled sheet", "path", e.Source, "filter", s.filter,
		"cell", fmt.Sprintf("%dx%d", cell[0], cell[1]), "tile_size", s.tileSize)
	return out, nil
}

// resample cuts every cell out of buf, scales it to the tile size and lays
// the cells out again with the offset and spacing of settings.
func (s *sheetSource) resample(buf *image.Buf, settings tileatlas.TileSetSettings, cell [2]uint32) (*image.Buf, error) {
	ts := s.tileSize
	off, sp, count := settings.Offset, settings.Spacing, settings.Count
	out, err := image.New(
		int(off[0]+count[0]*ts+(count[0]-1)*sp[0]),
		int(off[1]+count[1]*ts+(count[1]-1)*sp[1]))
	if err != nil {
		return nil, err
	}
	for y := range count[1] {
		for x := range count[0] {
			src, err := buf.Crop(
				int(off[0]+x*(cell[0]+sp[0])), int(off[1]+y*(cell[1]+sp[1])),
				int(cell[0]), int(cell[1]))
			if err != nil {
				return nil, err
			}
			scaled, err := src.Scale(int(ts), int(ts), s.filter)
			if err != nil {
				return nil, err
			}
			if err := out.Paste(scaled, int(off[0]+x*(ts+sp[0])), int(off[1]+y*(ts+sp[1]))); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// cellDims returns the width and height of the cells of a sheet laid out
// with settings. A remainder past the last cell that is too narrow for
// another cell is ignored.
func cellDims(settings tileatlas.TileSetSettings, width, height uint32) ([2]uint32, bool) {
	dims := [2]uint32{width, height}
	var cell [2]uint32
	for i := range 2 {
		if settings.Count[i] == 0 || dims[i] <= settings.Offset[i] {
			return cell, false
		}
		step := (uint64(dims[i]-settings.Offset[i]) + uint64(settings.Spacing[i])) / uint64(settings.Count[i])
		if step <= uint64(settings.Spacing[i]) {
			return cell, false
		}
		cell[i] = uint32(step - uint64(settings.Spacing[i]))
	}
	return cell, true
}

// cellEdge returns the edge length of the cells of a sheet laid out with
// settings. It fails unless the cells are square with a power of two edge
// no larger than tileatlas.MaxTileSize.
func cellEdge(settings tileatlas.TileSetSettings, width, height uint32) (uint32, bool) {
	cell, ok := cellDims(settings, width, height)
	if !ok || cell[0] != cell[1] || !tileatlas.ValidTileSize(cell[0]) {
		return 0, false
	}
	return cell[0], true
}
