// Package tileatlas builds and serializes tile texture atlases.
//
// # Overview
//
// A [Builder] holds a mip pyramid of RGBA8 tile images keyed by group and tile
// id. Every tile stores one frame sequence per mip level; level 0 is the full
// resolution tile and every further level halves the edge length. Frame i at
// level L is frame i at level 0 downsampled L times.
//
// Once the pyramid is complete enough, the builder packs it into square pages
// of 16×16 tiles, one array layer per page, and produces the lookup table that
// maps (group, tile) to the contiguous slot range holding its frames.
//
// # Quick Start
//
//	b := tileatlas.New(16)
//	b.InsertSingle("base", "grass", 0, pix, 16, [2]uint32{0, 0})
//	b.DownsampleLevels(tileatlas.AllLevels, false, tileatlas.BilinearSRGB{})
//
//	img := b.BuildImage()
//	lookup := b.BuildLookup()
//
//	// Persist and restore
//	err := b.WriteCompressedTo(f)
//	restored, err := tileatlas.ReadCompressedFrom(r)
//
// # Determinism
//
// Groups and tiles are always visited in byte-wise lexicographic order. The
// lookup table, the page layout and the serialized form are therefore identical
// for identical input.
//
// # Queued Loading
//
// [BuildQueue] collects tile registrations whose pixel data arrives later, for
// example from an asynchronous asset loader. The queue never blocks; it is
// advanced by polling an [ImageSource] until every registration is loaded or
// skipped, then finalized into an [Atlas].
//
// # Thread Safety
//
// Builder and BuildQueue are not safe for concurrent use. SetLogger and Logger
// are.
package tileatlas

// Version is the current version of the library.
const Version = "0.1.0"
