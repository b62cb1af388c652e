package router

import (
	"regexp"
	"strings"
)

// converterPrefixRe matches the "type:" part of a "<type:name>" placeholder.
var converterPrefixRe = regexp.MustCompile(`<\w+:`)

var nameReplacer = strings.NewReplacer(
	"<", "",
	">", "",
	"/", NameJoiner,
	"-", NameJoiner,
)

// DerivePattern computes the URL pattern of a candidate from its location.
//
// The index unit contributes an empty label, so "colors/index.go" becomes
// "colors" and the root index becomes "". With trailingSlash, non-empty
// patterns get exactly one trailing slash; the root pattern never does.
func DerivePattern(c Candidate, trailingSlash bool) string {
	label := c.Base()
	if c.IsIndex {
		label = ""
	}

	pattern := strings.Trim(c.Dir()+"/"+label, "/")
	if trailingSlash && pattern != "" {
		pattern += "/"
	}
	return pattern
}

// DeriveName computes a route name from a pattern.
//
//	colors/<slug:slug>  → colors_slug
//	current-time/       → current_time
//	""                  → ""
func DeriveName(pattern string) string {
	name := strings.Trim(pattern, "/")
	name = converterPrefixRe.ReplaceAllString(name, "<")
	name = nameReplacer.Replace(name)
	return strings.Trim(name, NameJoiner)
}

// resolve applies overrides and derivation for one loaded candidate.
func resolve(c Candidate, o Override, trailingSlash bool) (pattern, name string) {
	if o.URL != nil {
		pattern = strings.Trim(*o.URL, "/")
	} else {
		pattern = DerivePattern(c, trailingSlash)
	}

	if o.Name != nil {
		name = *o.Name
	} else {
		name = DeriveName(pattern)
	}
	return pattern, name
}

// isParamSegment reports whether a path segment holds a placeholder.
func isParamSegment(seg string) bool {
	return strings.ContainsRune(seg, '<')
}

func joinSegments(segments []string) string {
	return strings.Join(segments, "/")
}
