package router

import (
	"fmt"
	"net/url"
	"strings"
)

// Reverse builds the URL path of the named route.
// Every placeholder must have a value that satisfies its converter; values
// are escaped, except that "path" values keep their slashes.
//
//	t.Reverse("colors_slug", map[string]string{"slug": "red"}) // "/colors/red"
func (t *Table) Reverse(name string, params map[string]string) (string, error) {
	e, ok := t.byName[name]
	if !ok {
		return "", fmt.Errorf("%w for route %q", ErrNoReverseMatch, name)
	}

	pattern := e.route.Pattern
	var sb strings.Builder
	last := 0
	for i, loc := range placeholderRe.FindAllStringIndex(pattern, -1) {
		sb.WriteString(pattern[last:loc[0]])

		p := e.params[i]
		value, ok := params[p.Name]
		if !ok {
			return "", fmt.Errorf("%w for route %q: missing param %q", ErrNoReverseMatch, name, p.Name)
		}
		if err := ValidateParam(value, p.Type); err != nil {
			return "", fmt.Errorf("%w for route %q: %v", ErrNoReverseMatch, name, err)
		}
		sb.WriteString(escapeParam(value, p.Type == "path"))
		last = loc[1]
	}
	sb.WriteString(pattern[last:])

	return "/" + sb.String(), nil
}

// MustReverse is like Reverse but panics on error. Intended for templates
// and tests where the route set is fixed.
func (t *Table) MustReverse(name string, params map[string]string) string {
	u, err := t.Reverse(name, params)
	if err != nil {
		panic(err)
	}
	return u
}

// URLFunc returns a template function: {{ url "colors_slug" "slug" .Slug }}.
// Arguments after the name are key/value pairs.
func (t *Table) URLFunc() func(name string, kv ...string) (string, error) {
	return func(name string, kv ...string) (string, error) {
		if len(kv)%2 != 0 {
			return "", fmt.Errorf("url %q: odd number of key/value arguments", name)
		}
		params := make(map[string]string, len(kv)/2)
		for i := 0; i < len(kv); i += 2 {
			params[kv[i]] = kv[i+1]
		}
		return t.Reverse(name, params)
	}
}

func escapeParam(value string, multiSegment bool) string {
	if !multiSegment {
		return url.PathEscape(value)
	}
	parts := strings.Split(value, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
