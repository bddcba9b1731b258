package tileatlas

import (
	"bytes"
	"slices"
	"testing"
)

// solid returns an edge×edge RGBA8 image filled with one color.
func solid(edge int, r, g, b, a byte) []byte {
	pix := make([]byte, edge*edge*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, a
	}
	return pix
}

// gradient returns a w×h RGBA8 image whose pixel (x, y) is
// (x, y, seed, 255), so every pixel of a small image is distinct.
func gradient(w, h int, seed byte) []byte {
	pix := make([]byte, w*h*4)
	for y := range h {
		for x := range w {
			i := (y*w + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = byte(x), byte(y), seed, 255
		}
	}
	return pix
}

// pixelAt returns the RGBA8 pixel (x, y) of an image with rows w pixels wide.
func pixelAt(pix []byte, w, x, y int) [4]byte {
	i := (y*w + x) * 4
	return [4]byte{pix[i], pix[i+1], pix[i+2], pix[i+3]}
}

// assertBuildersEqual compares size, structure and frame bytes. Empty and
// nil frame lists are treated as equal.
func assertBuildersEqual(t *testing.T, got, want *Builder) {
	t.Helper()
	if got.Size() != want.Size() {
		t.Fatalf("Size() = %d, want %d", got.Size(), want.Size())
	}
	gotGroups, wantGroups := got.GroupIDs(), want.GroupIDs()
	if !slices.Equal(gotGroups, wantGroups) {
		t.Fatalf("GroupIDs() = %v, want %v", gotGroups, wantGroups)
	}
	for _, groupID := range wantGroups {
		gg, _ := got.Group(groupID)
		wg, _ := want.Group(groupID)
		if !slices.Equal(gg.TileIDs(), wg.TileIDs()) {
			t.Fatalf("group %q: TileIDs() = %v, want %v", groupID, gg.TileIDs(), wg.TileIDs())
		}
		for _, tileID := range wg.TileIDs() {
			gt, wt := gg.TileSets[tileID], wg.TileSets[tileID]
			if len(gt.Levels) != len(wt.Levels) {
				t.Fatalf("%s/%s: %d levels, want %d", groupID, tileID, len(gt.Levels), len(wt.Levels))
			}
			for l := range wt.Levels {
				gf, wf := gt.Levels[l].Frames, wt.Levels[l].Frames
				if len(gf) != len(wf) {
					t.Fatalf("%s/%s level %d: %d frames, want %d", groupID, tileID, l, len(gf), len(wf))
				}
				for i := range wf {
					if !bytes.Equal(gf[i], wf[i]) {
						t.Fatalf("%s/%s level %d frame %d differs", groupID, tileID, l, i)
					}
				}
			}
		}
	}
}

// mustPanic fails t unless fn panics.
func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
