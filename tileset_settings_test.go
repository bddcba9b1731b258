package tileatlas

import (
	"errors"
	"testing"
)

func TestTileSetSettings_TileSize(t *testing.T) {
	tests := []struct {
		name     string
		settings TileSetSettings
		w, h     uint32
		want     uint32
	}{
		{"single", NewTileSetSettings(1, 1), 16, 16, 16},
		{"strip", NewTileSetSettings(4, 1), 64, 16, 16},
		{"grid", NewTileSetSettings(2, 3), 32, 48, 16},
		{"smaller axis wins", NewTileSetSettings(1, 1), 32, 16, 16},
		{"rounds down", NewTileSetSettings(1, 1), 20, 20, 16},
		{"spacing", NewTileSetSettings(3, 1).WithSpacing(2, 0), 3*8 + 2*2, 8, 8},
		{"trailing spacing", NewTileSetSettings(3, 1).WithSpacing(2, 0), 3*8 + 3*2, 8, 8},
		{"offset", NewTileSetSettings(2, 2).WithOffset(4, 4), 4 + 16, 4 + 16, 8},
		{"zero count", NewTileSetSettings(0, 1), 16, 16, 0},
		{"offset covers sheet", NewTileSetSettings(1, 1).WithOffset(16, 0), 16, 16, 0},
		{"spacing only", NewTileSetSettings(2, 1).WithSpacing(8, 0), 8, 8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.settings.TileSize(tt.w, tt.h); got != tt.want {
				t.Errorf("TileSize(%d, %d) = %d, want %d", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestTileSetSettings_CellOffset(t *testing.T) {
	s := NewTileSetSettings(3, 2).WithOffset(1, 2).WithSpacing(3, 4)
	tests := []struct {
		i    uint32
		want [2]uint32
	}{
		{0, [2]uint32{1, 2}},
		{1, [2]uint32{1 + 11, 2}},
		{2, [2]uint32{1 + 22, 2}},
		{3, [2]uint32{1, 2 + 12}},
		{5, [2]uint32{1 + 22, 2 + 12}},
	}
	for _, tt := range tests {
		if got := s.CellOffset(tt.i, 8); got != tt.want {
			t.Errorf("CellOffset(%d) = %v, want %v", tt.i, got, tt.want)
		}
	}
	if s.Len() != 6 {
		t.Errorf("Len() = %d, want 6", s.Len())
	}
}

func TestTileSetSettings_With(t *testing.T) {
	base := NewTileSetSettings(1, 1)
	s := base.WithCount(4, 2).WithOffset(1, 1).WithSpacing(2, 2)
	if base.Count != [2]uint32{1, 1} || base.Offset != ([2]uint32{}) {
		t.Error("With* modified the receiver")
	}
	if s.Count != [2]uint32{4, 2} || s.Offset != [2]uint32{1, 1} || s.Spacing != [2]uint32{2, 2} {
		t.Errorf("unexpected settings %+v", s)
	}
}

func TestTileSetSettings_Validate(t *testing.T) {
	if err := NewTileSetSettings(1, 1).Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	for _, s := range []TileSetSettings{NewTileSetSettings(0, 1), NewTileSetSettings(1, 0), {}} {
		err := s.Validate()
		var se *SettingsError
		if !errors.As(err, &se) {
			t.Errorf("Validate(%+v) = %v, want *SettingsError", s, err)
		}
	}
}

func TestFloorPowerOfTwo(t *testing.T) {
	tests := []struct{ in, want uint32 }{
		{0, 0}, {1, 1}, {2, 2}, {3, 2}, {17, 16}, {1 << 31, 1 << 31}, {1<<32 - 1, 1 << 31},
	}
	for _, tt := range tests {
		if got := floorPowerOfTwo(tt.in); got != tt.want {
			t.Errorf("floorPowerOfTwo(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
