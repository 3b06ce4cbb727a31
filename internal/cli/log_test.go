package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/starmap/pkg/observability"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	logger.Info("test message")
	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))

	time.Sleep(10 * time.Millisecond)
	prog.done("Loaded 3 systems")

	if !strings.Contains(buf.String(), "Loaded 3 systems (") {
		t.Errorf("progress.done() output = %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should return default logger when none set")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)

	if loggerFromContext(ctx) != custom {
		t.Error("loggerFromContext should return the custom logger")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := &logHooks{logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnPlotStart(ctx, "map", 4)
	h.OnPlotComplete(ctx, "map", observability.PlotStats{Visible: 3, PrimaryLinks: 1}, time.Millisecond, nil)
	h.OnPlotComplete(ctx, "map", observability.PlotStats{}, 0, errors.New("boom"))
	h.OnRenderStart(ctx, []string{"svg"})
	h.OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)
	h.OnHit(ctx, "file", "k1")
	h.OnMiss(ctx, "redis", "k2")
	h.OnSet(ctx, "file", "k3", 42)

	out := buf.String()
	for _, want := range []string{
		"plot started", "plot finished", "visible=3", "plot failed", "boom",
		"render started", "render finished",
		"cache hit", "cache miss", "cache set", "bytes=42",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}

	var quiet bytes.Buffer
	q := &logHooks{logger: newLogger(&quiet, log.InfoLevel)}
	q.OnHit(ctx, "file", "k")
	if quiet.Len() != 0 {
		t.Error("hooks should log at debug level only")
	}
}
