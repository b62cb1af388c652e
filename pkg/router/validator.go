package router

import (
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// Route Validation
// =============================================================================

// Validator checks a routing table for conflicts.
//
// Discovery never validates: duplicate names or patterns are a caller
// decision. The CLI and the demo server run a Validator over their tables.
type Validator[H any] struct {
	routes []Route[H]
	errors []ValidationError
}

// ValidationError represents a route validation error.
type ValidationError struct {
	// Type is the error category
	Type ValidationErrorType

	// Message is the human-readable error message
	Message string

	// Files are the source files involved
	Files []string

	// Value is the duplicated pattern or name
	Value string
}

func (e ValidationError) Error() string {
	if len(e.Files) > 0 {
		return fmt.Sprintf("%s: %s (files: %s)", e.Type, e.Message, strings.Join(e.Files, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ValidationErrorType categorizes validation errors.
type ValidationErrorType string

const (
	// ErrorDuplicatePattern indicates multiple files resolve to the same pattern.
	// Example: colors.go and colors/index.go both resolve to "colors"
	ErrorDuplicatePattern ValidationErrorType = "DUPLICATE_PATTERN"

	// ErrorDuplicateName indicates multiple routes share a name.
	// Example: a-b.go and a/b.go both derive "a_b"
	ErrorDuplicateName ValidationErrorType = "DUPLICATE_NAME"
)

// MultiValidationError wraps multiple validation errors.
type MultiValidationError struct {
	Errors []ValidationError
}

func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d route validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// NewValidator creates a new route validator.
func NewValidator[H any](routes []Route[H]) *Validator[H] {
	return &Validator[H]{
		routes: routes,
	}
}

// Validate checks all routes for conflicts.
// Returns nil if all routes are valid, or a MultiValidationError with all errors.
func (v *Validator[H]) Validate() error {
	v.errors = nil

	v.validateDuplicates(ErrorDuplicatePattern, "pattern", func(r Route[H]) string { return r.Pattern })
	v.validateDuplicates(ErrorDuplicateName, "name", func(r Route[H]) string { return r.Name })

	if len(v.errors) > 0 {
		return &MultiValidationError{Errors: v.errors}
	}
	return nil
}

// Validate is a shorthand for NewValidator(routes).Validate().
func Validate[H any](routes []Route[H]) error {
	return NewValidator(routes).Validate()
}

// validateDuplicates groups routes by key and reports every group with more
// than one member, in first-seen order.
func (v *Validator[H]) validateDuplicates(typ ValidationErrorType, what string, key func(Route[H]) string) {
	var order []string
	byKey := make(map[string][]string)
	for _, route := range v.routes {
		k := key(route)
		if _, seen := byKey[k]; !seen {
			order = append(order, k)
		}
		byKey[k] = append(byKey[k], route.File)
	}

	for _, k := range order {
		files := byKey[k]
		if len(files) <= 1 {
			continue
		}
		v.errors = append(v.errors, ValidationError{
			Type:    typ,
			Message: fmt.Sprintf("Duplicate route %s %q", what, k),
			Files:   files,
			Value:   k,
		})
	}
}

// FormatValidationError formats a validation error for display:
//
//	ERROR: Duplicate route pattern "colors"
//	  app/routes/colors.go → colors
//	  app/routes/colors/index.go → colors
func FormatValidationError(err ValidationError) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("ERROR: %s\n", err.Message))
	for _, file := range err.Files {
		sb.WriteString(fmt.Sprintf("  %s → %s\n", file, err.Value))
	}

	return sb.String()
}

// =============================================================================
// Route Ordering
// =============================================================================

// segmentKind ranks a path segment for ordering.
type segmentKind int

const (
	segmentLiteral segmentKind = iota
	segmentIndex
	segmentParam
)

// orderKey is a candidate's path as (kind, text) pairs. The index unit
// contributes a trailing segmentIndex entry in place of its file name.
type orderKey []orderSegment

type orderSegment struct {
	kind segmentKind
	text string
}

func keyOf(c Candidate) orderKey {
	key := make(orderKey, 0, len(c.Segments))
	for i, seg := range c.Segments {
		switch {
		case i == len(c.Segments)-1 && c.IsIndex:
			key = append(key, orderSegment{kind: segmentIndex})
		case isParamSegment(seg):
			key = append(key, orderSegment{kind: segmentParam, text: seg})
		default:
			key = append(key, orderSegment{kind: segmentLiteral, text: seg})
		}
	}
	return key
}

// SortCandidates orders candidates for a first-match-wins router.
//
// Segments are compared depth by depth:
//  1. Literal segments before the index unit before parameter segments
//     ("colors/add" < "colors" < "colors/<slug:slug>")
//  2. Within the same kind, reverse lexicographic order
//     ("current-time" < "colors")
//  3. When one path is a prefix of the other, the deeper path first
//
// A request for a concrete path therefore reaches the literal route before a
// parameter route at the same depth that would also match it.
func SortCandidates(candidates []Candidate) {
	keys := make(map[string]orderKey, len(candidates))
	for _, c := range candidates {
		keys[c.RelPath] = keyOf(c)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return keys[candidates[i].RelPath].less(keys[candidates[j].RelPath])
	})
}

// patternKey is the order key of a resolved pattern. The root pattern
// orders as an index unit.
func patternKey(pattern string) orderKey {
	trimmed := strings.Trim(pattern, "/")
	if trimmed == "" {
		return orderKey{{kind: segmentIndex}}
	}
	return keyOf(Candidate{Segments: strings.Split(trimmed, "/")})
}

// sortRoutes reorders routes by keys, which are parallel to routes.
func sortRoutes[H any](routes []Route[H], keys []orderKey) {
	idx := make([]int, len(routes))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return keys[idx[i]].less(keys[idx[j]])
	})

	sorted := make([]Route[H], len(routes))
	for i, k := range idx {
		sorted[i] = routes[k]
	}
	copy(routes, sorted)
}

func (k orderKey) less(other orderKey) bool {
	for i := 0; i < len(k) && i < len(other); i++ {
		a, b := k[i], other[i]
		if a.kind != b.kind {
			return a.kind < b.kind
		}
		if a.text != b.text {
			return a.text > b.text
		}
	}
	return len(k) > len(other)
}
