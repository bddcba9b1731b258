package tileatlas

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// captureLogs routes tileatlas logging into a buffer for the duration of t.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestLogger_SilentByDefault(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	for _, set := range []*slog.Logger{nil, slog.Default()} {
		SetLogger(set)
		SetLogger(nil)
		l := Logger()
		if l == nil {
			t.Fatal("Logger() returned nil")
		}
		for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
			if l.Enabled(context.Background(), level) {
				t.Errorf("silent logger enabled for %v", level)
			}
		}
	}
}

func TestLogger_ReceivesBuildEvents(t *testing.T) {
	buf := captureLogs(t)

	b := New(4)
	b.InsertSingle("g", "t", 0, solid(4, 10, 20, 30, 255), 4, [2]uint32{})
	b.DownsampleLevels(AllLevels, false, BilinearSRGB{})
	_ = b.BuildImage()

	out := buf.String()
	for _, want := range []string{"downsampled levels", "built image"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogger_SwapWhileLogging(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetLogger(slog.New(slog.DiscardHandler))
				SetLogger(nil)
				return
			}
			Logger().Debug("tileatlas: concurrent", "i", i)
		}()
	}
	wg.Wait()
}

func BenchmarkLogger_Silent(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("tileatlas: level", "group", "g", "tile", "t")
	}
}
