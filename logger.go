package tileatlas

import (
	"log/slog"
	"sync/atomic"
)

// discard is installed while no logger is configured. Its handler reports
// every level as disabled, so log calls cost no formatting.
var discard = slog.New(slog.DiscardHandler)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(discard)
}

// SetLogger routes the package's diagnostics to l. The package is silent
// until SetLogger is called; nil makes it silent again. SetLogger may be
// called while other goroutines are building.
//
// Levels:
//   - [slog.LevelDebug]: levels generated, pages packed, bytes encoded
//   - [slog.LevelInfo]: build queue finalized
//   - [slog.LevelWarn]: loads for tiles that were never queued
//
// Example:
//
//	tileatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discard
	}
	logger.Store(l)
}

// Logger returns the logger the package writes to. It is never nil.
func Logger() *slog.Logger {
	return logger.Load()
}
