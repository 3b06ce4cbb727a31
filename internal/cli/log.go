// Package cli implements the starmap command-line interface.
//
// This package provides commands for rendering star catalogs as maps or jump
// networks, inspecting hex grid layouts and managing the artifact cache. The
// CLI is built using cobra and logs via charmbracelet/log.
//
// # Commands
//
//   - render: Generate SVG, PDF, or PNG star maps and jump networks
//   - grid: Print the hex grid layout used by the map overlay
//   - cache: Manage the artifact cache
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/starmap/pkg/observability"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with the elapsed duration.
// It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Loaded 412 systems (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks forwards pipeline and cache events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnPlotStart(_ context.Context, vizType string, systems int) {
	h.logger.Debug("plot started", "type", vizType, "systems", systems)
}

func (h *logHooks) OnPlotComplete(_ context.Context, vizType string, s observability.PlotStats, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("plot failed", "type", vizType, "error", err)
		return
	}
	h.logger.Debug("plot finished", "type", vizType,
		"visible", s.Visible, "near_visible", s.NearVisible, "excluded", s.Excluded,
		"primary_links", s.PrimaryLinks, "distance_links", s.DistanceLinks, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render finished", "formats", formats, "duration", d, "error", err)
}

func (h *logHooks) OnHit(_ context.Context, backend, key string) {
	h.logger.Debug("cache hit", "backend", backend, "key", key)
}

func (h *logHooks) OnMiss(_ context.Context, backend, key string) {
	h.logger.Debug("cache miss", "backend", backend, "key", key)
}

func (h *logHooks) OnSet(_ context.Context, backend, key string, size int) {
	h.logger.Debug("cache set", "backend", backend, "key", key, "bytes", size)
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
)
