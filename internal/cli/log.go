// Package cli implements the carousel command-line interface.
//
// The commands build a pager from a configuration file (or flags), then
// inspect it, render it, or drive it interactively:
//   - layout: print the attributes of the items in view
//   - snap: compute where a released drag comes to rest
//   - render: write SVG, PNG, PDF or JSON frames
//   - preview: interactive terminal carousel
//   - config: print the effective configuration
//   - cache: manage the rendered frame cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context and also receives layout and cache events
// through the observability hooks.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/carousel/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 4 frames (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability
// =============================================================================

// logHooks forwards layout and cache events to a logger at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnRecompute(ev observability.RecomputeEvent) {
	h.logger.Debug("recompute",
		"axis", ev.Axis,
		"sections", ev.Sections,
		"items", ev.Items,
		"stride", ev.Stride,
		"extent", ev.Extent,
		"count", ev.Recomputes)
}

func (h logHooks) OnQuery(ev observability.QueryEvent) {
	h.logger.Debug("query", "min", ev.Min, "max", ev.Max, "count", ev.Count)
}

func (h logHooks) OnSnap(ev observability.SnapEvent) {
	h.logger.Debug("snap",
		"policy", ev.Policy,
		"proposed", ev.Proposed,
		"velocity", ev.Velocity,
		"target", ev.Target)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// installHooks routes observability events to l.
func installHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetLayoutHooks(h)
	observability.SetCacheHooks(h)
}
