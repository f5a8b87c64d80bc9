// Package cli implements the doxflow command-line interface.
//
// This package provides commands for turning model files into PlantUML or
// Graphviz documents, rendering them to images, and checking models for
// interactions that point at undeclared names. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - export: Render a model to an SVG or PNG file
//   - document: Print the generated document text
//   - check: Report interaction endpoints no element declares
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context, and pipeline events reach the log through
// observability hooks registered before each command.
//
// # Configuration
//
// Defaults come from $XDG_CONFIG_HOME/doxflow/config.toml (or the file given
// with --config). Flags override the file.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered diagram.svg (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks forwards pipeline events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnLoadStart(_ context.Context, path string) {
	h.logger.Debug("load start", "path", path)
}

func (h logHooks) OnLoadComplete(_ context.Context, path string, roots, interactions int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("load complete", "path", path, "roots", roots, "interactions", interactions, "duration", d)
}

func (h logHooks) OnBuildStart(_ context.Context, notation string) {
	h.logger.Debug("build start", "notation", notation)
}

func (h logHooks) OnBuildComplete(_ context.Context, notation string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("build failed", "notation", notation, "err", err)
		return
	}
	h.logger.Debug("build complete", "notation", notation, "bytes", size, "duration", d)
}

func (h logHooks) OnRenderStart(_ context.Context, notation, format string) {
	h.logger.Debug("render start", "notation", notation, "format", format)
}

func (h logHooks) OnRenderComplete(_ context.Context, notation, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "notation", notation, "format", format, "err", err)
		return
	}
	h.logger.Debug("render complete", "notation", notation, "format", format, "bytes", size, "duration", d)
}
