package router

import (
	"io"
	"log/slog"
)

const (
	// DefaultSuffix is the file suffix of route units.
	DefaultSuffix = ".go"

	// DefaultIndexName is the base name of a directory's index unit.
	DefaultIndexName = "index"
)

// Options configures discovery.
type Options struct {
	// TrailingSlash appends one slash to every derived non-root pattern.
	TrailingSlash bool

	// Exclude is an optional glob; matching files are skipped.
	Exclude string

	// Suffix is the unit source suffix (default: ".go").
	Suffix string

	// IndexName is the base name of the index unit (default: "index").
	IndexName string

	// Logger receives debug output about skipped files.
	// Default: discards everything.
	Logger *slog.Logger
}

// Option configures discovery.
type Option func(*Options)

// WithTrailingSlash enables or disables trailing slashes on derived patterns.
func WithTrailingSlash(enabled bool) Option {
	return func(o *Options) {
		o.TrailingSlash = enabled
	}
}

// WithExclude sets a glob of files to skip. "*" matches across directories.
func WithExclude(pattern string) Option {
	return func(o *Options) {
		o.Exclude = pattern
	}
}

// WithSuffix sets the unit source suffix.
func WithSuffix(suffix string) Option {
	return func(o *Options) {
		o.Suffix = suffix
	}
}

// WithIndexName sets the base name of index units.
func WithIndexName(name string) Option {
	return func(o *Options) {
		o.IndexName = name
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func defaultOptions() Options {
	return Options{
		Suffix:    DefaultSuffix,
		IndexName: DefaultIndexName,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func buildOptions(opts []Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Suffix == "" {
		o.Suffix = DefaultSuffix
	}
	if o.IndexName == "" {
		o.IndexName = DefaultIndexName
	}
	if o.Logger == nil {
		o.Logger = defaultOptions().Logger
	}
	return o
}
