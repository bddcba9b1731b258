package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/gogpu/tileatlas"
)

func buildCommand(fs *flag.FlagSet) func(e *env) error {
	var (
		manifest    = fs.String("manifest", "atlas.json", "manifest listing the tile sheets")
		output      = fs.String("o", "atlas.tla", "output file")
		compress    = fs.Bool("compress", false, "write the atlas zstd compressed")
		levels      = fs.Uint("levels", 0, "keep at most this many mip levels (0 keeps all)")
		skipMissing = fs.Bool("skip-missing", false, "leave out tiles whose sheet cannot be loaded")
		cacheMB     = fs.Int64("cache-mb", 256, "memory budget for decoded sheets in MiB (0 is unlimited)")
	)
	return func(e *env) error {
		if len(e.args) != 0 {
			return errUsage
		}
		m, err := LoadManifest(*manifest)
		if err != nil {
			return err
		}
		src, err := newSheetSource(m, *cacheMB<<20, e.log)
		if err != nil {
			return err
		}

		b, err := buildAtlas(m, src, *skipMissing, e)
		if err != nil {
			return err
		}

		b.DownsampleLevels(tileatlas.AllLevels, false, tileatlas.BilinearSRGB{})
		if *levels > 0 {
			b.LimitLevels(uint32(*levels))
		}
		if err := writeAtlas(b, *output, *compress); err != nil {
			return err
		}

		stats := src.sheets.Stats()
		e.log.Info("wrote atlas",
			"path", *output, "compressed", *compress,
			"size", b.Size(), "tiles", b.Len(), "frames", b.ImageCount(),
			"pages", b.PageCount(), "levels", b.FindMipLevelCommonMax(),
			"sheet_loads", stats.Misses, "sheet_hits", stats.Hits)
		return nil
	}
}

// buildAtlas queues every manifest entry and loads the sheets into a
// builder holding level 0 of every tile.
func buildAtlas(m *Manifest, src *sheetSource, skipMissing bool, e *env) (*tileatlas.Builder, error) {
	var q *tileatlas.BuildQueue[sheetRef]
	if m.TileSize != 0 {
		q = tileatlas.NewBuildQueueWithSize[sheetRef](m.TileSize)
	} else {
		q = tileatlas.NewBuildQueue[sheetRef]()
	}
	for _, groupID := range m.GroupIDs() {
		for _, entry := range m.Groups[groupID] {
			q.Insert(groupID, entry.ID, sheetRef{groupID: groupID, entry: entry}, entry.Settings())
		}
	}
	q.Lock()

	loaded := q.Poll(src)
	// Frames are copied out of the sheets, so the decoded files can go
	// before the mip chain is built.
	stats := src.sheets.Stats()
	src.sheets.Clear()
	e.log.Debug("loaded sheets", "loaded", loaded, "queued", q.CountTotal(),
		"cached", stats.Len, "evicted", stats.Evictions, "bytes", stats.Weight)

	if !q.IsComplete() {
		if !skipMissing {
			errs := make([]error, 0, len(src.failures))
			for _, f := range src.failures {
				errs = append(errs, f)
			}
			return nil, errors.Join(errs...)
		}
		for _, f := range src.failures {
			e.log.Warn("skipping tile", "group", f.ref.groupID, "tile", f.ref.entry.ID, "err", f.err)
			q.Skip(f.ref.groupID, f.ref.entry.ID)
		}
	}

	b := q.Reset(0)
	if b == nil || b.IsEmpty() {
		return nil, fmt.Errorf("no tile could be loaded")
	}
	return b, nil
}
