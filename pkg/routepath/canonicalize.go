// Package routepath normalizes request paths before they are matched
// against a routing table.
package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Result contains the result of path canonicalization.
type Result struct {
	// Path is the canonicalized path, always starting with "/".
	Path string

	// Changed indicates if the path was modified during canonicalization.
	Changed bool
}

// Trimmed returns the path without its leading slash, the form routing
// patterns are written in.
func (r Result) Trimmed() string {
	return strings.TrimPrefix(r.Path, "/")
}

// Path canonicalization errors.
var (
	ErrBackslashInPath       = errors.New("path contains backslash")
	ErrNullByteInPath        = errors.New("path contains null byte")
	ErrInvalidPercentEscape  = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot       = errors.New("path escapes root via ..")
	ErrEncodedSlashInSegment = errors.New("encoded slash (%2F) in segment")
)

// Canonicalize normalizes an escaped URL path.
//
// The following transformations are applied:
//   - Ensure a leading slash
//   - Collapse multiple slashes (/colors//add → /colors/add)
//   - Remove "." segments (/colors/./add → /colors/add)
//   - Resolve ".." segments (/colors/../time → /time)
//
// A trailing slash is kept: "colors/" and "colors" are different routes.
//
// The following inputs are rejected with an error:
//   - Paths containing backslash (\)
//   - Paths containing NUL byte (literal or %00)
//   - Invalid percent-escapes (e.g., %GG, %2)
//   - ".." that would escape root (e.g., /../secret)
func Canonicalize(input string) (Result, error) {
	if input == "" {
		return Result{Path: "/", Changed: true}, nil
	}

	// SECURITY: Reject backslash.
	if strings.Contains(input, "\\") {
		return Result{}, ErrBackslashInPath
	}

	// SECURITY: Reject NUL byte (both literal and encoded).
	if strings.Contains(input, "\x00") || strings.Contains(strings.ToUpper(input), "%00") {
		return Result{}, ErrNullByteInPath
	}

	if strings.Contains(input, "%") {
		if err := validatePercentEscapes(input); err != nil {
			return Result{}, err
		}
	}

	trailing := len(input) > 1 && strings.HasSuffix(input, "/")

	var result []string
	for _, seg := range strings.Split(input, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(result) == 0 {
				// SECURITY: ".." escapes root.
				return Result{}, ErrPathEscapesRoot
			}
			result = result[:len(result)-1]
		default:
			result = append(result, seg)
		}
	}

	path := "/" + strings.Join(result, "/")
	if trailing && len(result) > 0 {
		path += "/"
	}

	return Result{
		Path:    path,
		Changed: path != input,
	}, nil
}

// validatePercentEscapes checks that all percent-escapes are %XX with hex digits.
func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 2
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// DecodeSegment decodes a matched parameter value.
// Unless multiSegment is set, a decoded "/" (from %2F) is rejected: it would
// let a single-segment parameter smuggle a path separator.
func DecodeSegment(value string, multiSegment bool) (string, error) {
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return "", ErrInvalidPercentEscape
	}

	if !multiSegment && strings.Contains(decoded, "/") {
		return "", ErrEncodedSlashInSegment
	}

	return decoded, nil
}
