package tileatlas

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Encoded layout, all integers unsigned varints:
//
//	"TLAS" version size groupCount
//	  groupID tileCount
//	    tileID levelCount
//	      frameCount frame...
//
// Strings are length-prefixed, groups and tiles appear in lexicographic order
// and frames are raw RGBA8 of exactly MipLevelByteLen(level) bytes, so equal
// builders always encode to equal bytes.
const (
	codecMagic   = "TLAS"
	codecVersion = 1
)

// encodeBufferSize is the write buffer used when streaming the encoding.
const encodeBufferSize = 64 << 10

// WriteUncompressedTo writes the encoded builder to w.
func (b *Builder) WriteUncompressedTo(w io.Writer) error {
	n, err := b.encode(w)
	if err != nil {
		return fmt.Errorf("tileatlas: write atlas: %w", err)
	}
	Logger().Debug("tileatlas: wrote atlas", "bytes", n, "compressed", false)
	return nil
}

// ReadUncompressedFrom reads a builder written by WriteUncompressedTo.
// Errors are *ReadError.
func ReadUncompressedFrom(r io.Reader) (*Builder, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ioError(err)
	}
	return decodeBuilder(data)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (b *Builder) MarshalBinary() ([]byte, error) {
	var buf bytesWriter
	if _, err := b.encode(&buf); err != nil {
		return nil, err
	}
	return buf.b, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The receiver is
// left unchanged on error.
func (b *Builder) UnmarshalBinary(data []byte) error {
	d, err := decodeBuilder(data)
	if err != nil {
		return err
	}
	*b = *d
	return nil
}

type bytesWriter struct{ b []byte }

func (w *bytesWriter) Write(p []byte) (int, error) {
	w.b = append(w.b, p...)
	return len(p), nil
}

// encode streams the builder to w and returns the number of bytes written.
func (b *Builder) encode(w io.Writer) (int64, error) {
	e := &encoder{w: bufio.NewWriterSize(w, encodeBufferSize)}

	e.raw([]byte(codecMagic))
	e.uvarint(codecVersion)
	e.uvarint(uint64(b.size))

	groupIDs := b.GroupIDs()
	e.uvarint(uint64(len(groupIDs)))
	for _, groupID := range groupIDs {
		g := b.groups[groupID]
		tileIDs := g.TileIDs()
		e.string(groupID)
		e.uvarint(uint64(len(tileIDs)))
		for _, tileID := range tileIDs {
			t := g.TileSets[tileID]
			e.string(tileID)
			e.uvarint(uint64(len(t.Levels)))
			for _, l := range t.Levels {
				e.uvarint(uint64(l.Len()))
				for _, f := range l.Frames {
					e.raw(f)
				}
			}
		}
	}

	if err := e.w.Flush(); err != nil {
		return e.n, err
	}
	return e.n, nil
}

// encoder writes through a bufio.Writer, whose errors are sticky and
// surface on Flush.
type encoder struct {
	w       *bufio.Writer
	n       int64
	scratch [binary.MaxVarintLen64]byte
}

func (e *encoder) raw(p []byte) {
	n, _ := e.w.Write(p)
	e.n += int64(n)
}

func (e *encoder) uvarint(v uint64) {
	e.raw(e.scratch[:binary.PutUvarint(e.scratch[:], v)])
}

func (e *encoder) string(s string) {
	e.uvarint(uint64(len(s)))
	n, _ := e.w.WriteString(s)
	e.n += int64(n)
}

// Decode errors.
var (
	errTruncated     = errors.New("unexpected end of data")
	errTrailingBytes = errors.New("trailing bytes after atlas")
	errBadMagic      = errors.New("bad magic")
)

// decodeBuilder parses data and validates every structural invariant.
func decodeBuilder(data []byte) (*Builder, error) {
	d := &decoder{buf: data}
	b, err := d.builder()
	if err != nil {
		return nil, decodeError(err)
	}
	if d.off != len(d.buf) {
		return nil, decodeError(errTrailingBytes)
	}
	return b, nil
}

type decoder struct {
	buf []byte
	off int
}

func (d *decoder) remaining() int {
	return len(d.buf) - d.off
}

func (d *decoder) raw(n int) ([]byte, error) {
	if n < 0 || n > d.remaining() {
		return nil, errTruncated
	}
	p := d.buf[d.off : d.off+n]
	d.off += n
	return p, nil
}

func (d *decoder) uvarint() (uint64, error) {
	v, n := binary.Uvarint(d.buf[d.off:])
	if n <= 0 {
		if n == 0 {
			return 0, errTruncated
		}
		return 0, errors.New("varint overflows 64 bits")
	}
	d.off += n
	return v, nil
}

// count reads a length prefix that must not exceed limit.
func (d *decoder) count(what string, limit uint64) (int, error) {
	v, err := d.uvarint()
	if err != nil {
		return 0, err
	}
	if v > limit {
		return 0, fmt.Errorf("%s %d exceeds limit %d", what, v, limit)
	}
	return int(v), nil
}

func (d *decoder) string() (string, error) {
	n, err := d.count("string length", uint64(d.remaining()))
	if err != nil {
		return "", err
	}
	p, err := d.raw(n)
	if err != nil {
		return "", err
	}
	return string(p), nil
}

func (d *decoder) builder() (*Builder, error) {
	magic, err := d.raw(len(codecMagic))
	if err != nil {
		return nil, err
	}
	if string(magic) != codecMagic {
		return nil, errBadMagic
	}
	version, err := d.uvarint()
	if err != nil {
		return nil, err
	}
	if version != codecVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	size, err := d.uvarint()
	if err != nil {
		return nil, err
	}
	if size > MaxTileSize || !ValidTileSize(uint32(size)) {
		return nil, fmt.Errorf("invalid tile size %d", size)
	}
	b := New(uint32(size))

	// Every group and tile needs at least two bytes.
	groupCount, err := d.count("group count", uint64(d.remaining()/2))
	if err != nil {
		return nil, err
	}
	prevGroup := ""
	for i := range groupCount {
		groupID, err := d.string()
		if err != nil {
			return nil, err
		}
		if i > 0 && groupID <= prevGroup {
			return nil, fmt.Errorf("group %q out of order", groupID)
		}
		prevGroup = groupID

		g, err := d.group(b)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", groupID, err)
		}
		b.groups[groupID] = g
	}
	return b, nil
}

func (d *decoder) group(b *Builder) (*Group, error) {
	tileCount, err := d.count("tile count", uint64(d.remaining()/2))
	if err != nil {
		return nil, err
	}
	if tileCount == 0 {
		return nil, errors.New("group has no tiles")
	}
	g := newGroup()
	prevTile := ""
	for i := range tileCount {
		tileID, err := d.string()
		if err != nil {
			return nil, err
		}
		if i > 0 && tileID <= prevTile {
			return nil, fmt.Errorf("tile %q out of order", tileID)
		}
		prevTile = tileID

		t, err := d.tileSet(b)
		if err != nil {
			return nil, fmt.Errorf("tile %q: %w", tileID, err)
		}
		g.TileSets[tileID] = t
	}
	return g, nil
}

func (d *decoder) tileSet(b *Builder) (*TileSet, error) {
	levelCount, err := d.uvarint()
	if err != nil {
		return nil, err
	}
	if levelCount != uint64(b.MipLevelsMax()) {
		return nil, fmt.Errorf("level count %d, want %d", levelCount, b.MipLevelsMax())
	}
	t := newTileSet(b.MipLevelsMax())
	for level := range t.Levels {
		frameLen := int(b.MipLevelByteLen(uint32(level)))
		frameCount, err := d.count("frame count", uint64(d.remaining()/frameLen))
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", level, err)
		}
		if frameCount == 0 {
			continue
		}
		frames := make([][]byte, frameCount)
		for i := range frames {
			p, err := d.raw(frameLen)
			if err != nil {
				return nil, err
			}
			frames[i] = append([]byte(nil), p...)
		}
		t.Levels[level] = ImageSequence{Frames: frames}
	}
	if t.isEmpty() {
		return nil, errors.New("tile has no frames")
	}
	return t, nil
}
