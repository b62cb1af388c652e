package router

import "net/http"

// NameJoiner replaces every slash and dash when a route name is derived.
const NameJoiner = "_"

// Candidate is a file discovered under the routes directory that might
// define a route.
type Candidate struct {
	// Path is the file path as walked (root joined, OS separators).
	Path string

	// RelPath is the slash-separated path relative to the root, suffix kept.
	RelPath string

	// Segments are the path segments from the root to the file. The last
	// segment has its suffix stripped.
	Segments []string

	// Module identifies the unit for a Loader (e.g., "colors/add").
	Module string

	// IsIndex reports whether the file is its directory's index unit.
	IsIndex bool
}

// Dir returns the slash-separated directory of the candidate relative to
// the root ("" for files in the root itself).
func (c Candidate) Dir() string {
	if len(c.Segments) <= 1 {
		return ""
	}
	return joinSegments(c.Segments[:len(c.Segments)-1])
}

// Base returns the file's base name with the suffix stripped.
func (c Candidate) Base() string {
	if len(c.Segments) == 0 {
		return ""
	}
	return c.Segments[len(c.Segments)-1]
}

// Override carries optional values that bypass derivation.
// A nil field means "derive".
type Override struct {
	URL  *string
	Name *string
}

// Unit is a loaded handler reference.
type Unit[H any] struct {
	// View is the handler exposed by the file.
	View H

	// Override holds the view's explicit URL and name, if any.
	Override Override
}

// UnitOption configures a Unit's overrides.
type UnitOption func(*Override)

// WithURL sets an explicit URL for the view.
func WithURL(url string) UnitOption {
	return func(o *Override) {
		o.URL = &url
	}
}

// WithName sets an explicit route name for the view.
func WithName(name string) UnitOption {
	return func(o *Override) {
		o.Name = &name
	}
}

// NewOverride builds an Override from options.
func NewOverride(opts ...UnitOption) Override {
	var o Override
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Loader loads the unit behind a candidate.
//
// Load returns (nil, nil) when the candidate exposes no view; such files are
// not routes and are skipped. Any error is treated as a configuration error.
type Loader[H any] interface {
	Load(c Candidate) (*Unit[H], error)
}

// LoaderFunc is a function adapter for Loader.
type LoaderFunc[H any] func(c Candidate) (*Unit[H], error)

// Load implements Loader.
func (f LoaderFunc[H]) Load(c Candidate) (*Unit[H], error) {
	return f(c)
}

// Route is an entry of the generated routing table.
type Route[H any] struct {
	// Pattern is the URL pattern without a leading slash (e.g., "colors/<slug:slug>").
	Pattern string

	// Name is the symbolic route name (e.g., "colors_slug").
	Name string

	// Handler is the view to invoke when the pattern matches.
	Handler H

	// Module is the unit identifier the route was loaded from.
	Module string

	// File is the source file path.
	File string

	// Override holds the explicit values the unit supplied, if any.
	Override Override
}

// HTTPRoute is the route type produced by loaders of http.Handler views.
type HTTPRoute = Route[http.Handler]
