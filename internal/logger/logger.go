// Package logger builds the slog loggers used by the CLI and the demo server.
//
// Output goes through a tint handler. When the writer is not a terminal,
// colors are disabled and timestamps switch to RFC 3339 so logs stay
// machine-readable.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Options configures a logger.
type Options struct {
	// Level is the minimum level logged.
	Level slog.Level

	// NoColor forces colors off even on a terminal.
	NoColor bool

	// TimeFormat overrides the detected time format.
	TimeFormat string
}

// Option configures Options.
type Option func(*Options)

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(o *Options) {
		o.Level = level
	}
}

// WithNoColor disables colors.
func WithNoColor(noColor bool) Option {
	return func(o *Options) {
		o.NoColor = noColor
	}
}

// WithTimeFormat sets the time format.
func WithTimeFormat(format string) Option {
	return func(o *Options) {
		o.TimeFormat = format
	}
}

// New creates a logger writing to w.
func New(w io.Writer, opts ...Option) *slog.Logger {
	return slog.New(NewHandler(w, opts...))
}

// NewHandler creates a tint handler writing to w.
func NewHandler(w io.Writer, opts ...Option) slog.Handler {
	terminal := isTerminal(w)

	o := Options{Level: slog.LevelInfo, NoColor: !terminal}
	for _, opt := range opts {
		opt(&o)
	}

	timeFormat := o.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
		if terminal {
			timeFormat = time.Kitchen
		}
	}

	return tint.NewHandler(w, &tint.Options{
		Level:      o.Level,
		NoColor:    o.NoColor || !terminal,
		TimeFormat: timeFormat,
	})
}

// Default creates a stderr logger at the given level name.
// An unknown level name falls back to info.
func Default(level string) *slog.Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return New(os.Stderr, WithLevel(lvl))
}

// ParseLevel parses debug, info, warn (or warning) and error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
