package router

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/vango-dev/autoroute/pkg/routepath"
)

// Table is an ordered, first-match-wins routing table.
//
// Routes are tried in the order given to NewTable, which for discovered
// routes is the order of SortCandidates. A Table is immutable and safe for
// concurrent use.
type Table struct {
	entries     []*entry
	byName      map[string]*entry
	appendSlash bool
	notFound    http.Handler
}

// entry is a compiled route.
type entry struct {
	route  HTTPRoute
	re     *regexp.Regexp
	params []Placeholder
}

// MatchResult contains the result of matching a path against the table.
type MatchResult struct {
	// Route is the matched route
	Route HTTPRoute

	// Params are the decoded placeholder values
	Params map[string]string
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithAppendSlash redirects a request that misses every route to the same
// path with a trailing slash, when that path would match.
func WithAppendSlash(enabled bool) TableOption {
	return func(t *Table) {
		t.appendSlash = enabled
	}
}

// WithNotFound sets the handler for unmatched requests.
// Default: http.NotFound.
func WithNotFound(handler http.Handler) TableOption {
	return func(t *Table) {
		t.notFound = handler
	}
}

// NewTable compiles routes into a table.
// It fails when a pattern uses an unknown converter type.
func NewTable(routes []HTTPRoute, opts ...TableOption) (*Table, error) {
	t := &Table{
		byName:   make(map[string]*entry),
		notFound: http.NotFoundHandler(),
	}
	for _, opt := range opts {
		opt(t)
	}

	for _, route := range routes {
		re, params, err := compilePattern(route.Pattern)
		if err != nil {
			return nil, fmt.Errorf("route %q (%s): %w", route.Name, route.File, err)
		}

		e := &entry{route: route, re: re, params: params}
		t.entries = append(t.entries, e)

		// The first route with a name wins reverse lookups, like dispatch.
		if _, exists := t.byName[route.Name]; !exists {
			t.byName[route.Name] = e
		}
	}

	return t, nil
}

// compilePattern turns a pattern into an anchored regexp with one named
// group per placeholder.
func compilePattern(pattern string) (*regexp.Regexp, []Placeholder, error) {
	var sb strings.Builder
	sb.WriteString("^")

	params := Placeholders(pattern)
	last := 0
	for i, loc := range placeholderRe.FindAllStringIndex(pattern, -1) {
		sb.WriteString(regexp.QuoteMeta(pattern[last:loc[0]]))

		expr, err := converterRegexp(params[i].Type)
		if err != nil {
			return nil, nil, err
		}
		sb.WriteString(fmt.Sprintf("(%s)", expr))
		last = loc[1]
	}
	sb.WriteString(regexp.QuoteMeta(pattern[last:]))
	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, nil, err
	}
	return re, params, nil
}

// Routes returns the table's routes in match order.
func (t *Table) Routes() []HTTPRoute {
	routes := make([]HTTPRoute, len(t.entries))
	for i, e := range t.entries {
		routes[i] = e.route
	}
	return routes
}

// Match finds the first route matching an escaped request path.
// The path may start with a slash; it is canonicalized before matching.
func (t *Table) Match(path string) (*MatchResult, bool) {
	canon, err := routepath.Canonicalize(path)
	if err != nil {
		return nil, false
	}
	return t.match(canon.Trimmed())
}

func (t *Table) match(trimmed string) (*MatchResult, bool) {
	for _, e := range t.entries {
		m := e.re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}

		params, ok := e.decode(m[1:])
		if !ok {
			continue
		}
		return &MatchResult{Route: e.route, Params: params}, true
	}
	return nil, false
}

// decode unescapes captured values. A value that fails to decode makes the
// entry a non-match so later routes still get a chance.
func (e *entry) decode(values []string) (map[string]string, bool) {
	params := make(map[string]string, len(e.params))
	for i, p := range e.params {
		v, err := routepath.DecodeSegment(values[i], p.Type == "path")
		if err != nil {
			return nil, false
		}
		params[p.Name] = v
	}
	return params, true
}

// ServeHTTP dispatches a request to the first matching route.
func (t *Table) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	canon, err := routepath.Canonicalize(r.URL.EscapedPath())
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	trimmed := canon.Trimmed()
	if result, ok := t.match(trimmed); ok {
		r = bind(r, result.Route.Name, result.Route.Pattern, result.Params)
		result.Route.Handler.ServeHTTP(w, r)
		return
	}

	if t.appendSlash && trimmed != "" && !strings.HasSuffix(trimmed, "/") {
		if _, ok := t.match(trimmed + "/"); ok {
			target := canon.Path + "/"
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			code := http.StatusMovedPermanently
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				code = http.StatusPermanentRedirect
			}
			http.Redirect(w, r, target, code)
			return
		}
	}

	t.notFound.ServeHTTP(w, r)
}
