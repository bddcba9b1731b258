package tileatlas

import "errors"

// Sentinel errors for tileatlas package.
var (
	// ErrCorrupt is matched by every decode error: the payload was read
	// successfully but does not describe a valid builder.
	ErrCorrupt = errors.New("tileatlas: corrupt atlas data")

	// ErrUnsupportedVersion is returned when the payload was written by an
	// incompatible format version.
	ErrUnsupportedVersion = errors.New("tileatlas: unsupported format version")
)

// ReadErrorKind distinguishes the two ways reading an atlas can fail.
type ReadErrorKind uint8

const (
	// ReadErrorIO means the underlying reader (or decompressor) failed.
	ReadErrorIO ReadErrorKind = iota

	// ReadErrorDecode means the bytes were read but are not a valid atlas.
	ReadErrorDecode
)

// String returns the kind name.
func (k ReadErrorKind) String() string {
	switch k {
	case ReadErrorIO:
		return "io"
	case ReadErrorDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// ReadError is returned by the Read* functions. No partially decoded
// builder is ever returned alongside it.
type ReadError struct {
	Kind ReadErrorKind
	Err  error
}

func (e *ReadError) Error() string {
	return "tileatlas: read atlas (" + e.Kind.String() + "): " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// Is reports ErrCorrupt for decode errors so callers can test the kind with
// errors.Is.
func (e *ReadError) Is(target error) bool {
	return target == ErrCorrupt && e.Kind == ReadErrorDecode
}

func ioError(err error) *ReadError {
	return &ReadError{Kind: ReadErrorIO, Err: err}
}

func decodeError(err error) *ReadError {
	return &ReadError{Kind: ReadErrorDecode, Err: err}
}

// SettingsError represents a validation error in a settings value.
type SettingsError struct {
	Field  string
	Reason string
}

func (e *SettingsError) Error() string {
	return "tileatlas: invalid settings." + e.Field + ": " + e.Reason
}
