package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/tileatlas"
	"github.com/gogpu/tileatlas/internal/image"
)

// Manifest describes the sheets that make up an atlas.
//
//	{
//	  "tile_size": 32,
//	  "filter": "catmullrom",
//	  "groups": {
//	    "units": [
//	      {"id": "archer", "source": "sheets/archer.png", "count": [4, 1]},
//	      {"source": "sheets/knight.png", "count": [2, 2], "offset": [1, 1], "spacing": [2, 2]}
//	    ]
//	  }
//	}
type Manifest struct {
	// TileSize forces the tile edge length. Sheets of another cell size
	// are resampled with Filter. 0 sizes the atlas from the first sheet.
	TileSize uint32 `json:"tile_size,omitempty"`
	// Filter names the resampling filter: nearest, bilinear or catmullrom.
	Filter string `json:"filter,omitempty"`
	// Groups maps group ids to their tiles.
	Groups map[string][]TileEntry `json:"groups"`
}

// TileEntry is one sheet holding the frames of a tile.
type TileEntry struct {
	// ID defaults to the file name of Source without extension.
	ID string `json:"id,omitempty"`
	// Source is resolved relative to the manifest directory.
	Source  string    `json:"source"`
	Count   [2]uint32 `json:"count"`
	Offset  [2]uint32 `json:"offset"`
	Spacing [2]uint32 `json:"spacing"`
}

// Settings returns the grid layout of the sheet.
func (e TileEntry) Settings() tileatlas.TileSetSettings {
	return tileatlas.NewTileSetSettings(e.Count[0], e.Count[1]).
		WithOffset(e.Offset[0], e.Offset[1]).
		WithSpacing(e.Spacing[0], e.Spacing[1])
}

// LoadManifest reads, normalizes and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := ParseManifest(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes a manifest whose relative sources live in dir.
func ParseManifest(data []byte, dir string) (*Manifest, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	m.normalize(dir)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// normalize fills defaults, derives missing ids and puts every id in NFC so
// ids typed in a manifest match ids derived from file names.
func (m *Manifest) normalize(dir string) {
	groups := make(map[string][]TileEntry, len(m.Groups))
	for groupID, entries := range m.Groups {
		groupID = norm.NFC.String(groupID)
		for _, e := range entries {
			if e.Count == [2]uint32{} {
				e.Count = [2]uint32{1, 1}
			}
			if e.ID == "" && e.Source != "" {
				base := filepath.Base(e.Source)
				e.ID = strings.TrimSuffix(base, filepath.Ext(base))
			}
			e.ID = norm.NFC.String(e.ID)
			if e.Source != "" && !filepath.IsAbs(e.Source) {
				e.Source = filepath.Join(dir, e.Source)
			}
			groups[groupID] = append(groups[groupID], e)
		}
	}
	m.Groups = groups
}

// Validate checks the manifest for missing fields and duplicate tiles.
func (m *Manifest) Validate() error {
	if len(m.Groups) == 0 {
		return fmt.Errorf("manifest has no groups")
	}
	if m.TileSize != 0 && !tileatlas.ValidTileSize(m.TileSize) {
		return fmt.Errorf("tile_size %d must be a power of two up to %d", m.TileSize, tileatlas.MaxTileSize)
	}
	if _, err := image.ParseFilter(m.Filter); err != nil {
		return err
	}

	for _, groupID := range m.GroupIDs() {
		if groupID == "" {
			return fmt.Errorf("group id is required")
		}
		seen := make(map[string]bool)
		for i, e := range m.Groups[groupID] {
			if e.Source == "" {
				return fmt.Errorf("group %q tile %d: source is required", groupID, i)
			}
			if e.ID == "" {
				return fmt.Errorf("group %q tile %d: id is required", groupID, i)
			}
			if seen[e.ID] {
				return fmt.Errorf("group %q: duplicate tile %q", groupID, e.ID)
			}
			seen[e.ID] = true
			if err := e.Settings().Validate(); err != nil {
				return fmt.Errorf("group %q tile %q: %w", groupID, e.ID, err)
			}
		}
	}
	return nil
}

// GroupIDs returns the group ids in lexicographic order.
func (m *Manifest) GroupIDs() []string {
	return slices.Sorted(maps.Keys(m.Groups))
}
