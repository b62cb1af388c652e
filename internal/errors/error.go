package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"go/scanner"
	"os"

	"github.com/vango-dev/autoroute/pkg/router"
)

// Category represents the type of error.
type Category string

const (
	CategoryDiscovery  Category = "discovery"
	CategoryValidation Category = "validation"
	CategoryConfig     Category = "config"
	CategoryCodegen    Category = "codegen"
	CategoryCLI        Category = "cli"
)

// Location represents a source code location.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	if l.Line > 0 {
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return l.File
}

// Error is a structured error with source location, suggestions, and documentation.
type Error struct {
	// Code is a unique error identifier (e.g., "E100").
	Code string

	// Category is the error type (discovery, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the source code location where the error occurred.
	Location *Location

	// Context contains surrounding source code lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is code showing the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds source location to the error.
func (e *Error) WithLocation(file string, line, column int) *Error {
	e.Location = &Location{File: file, Line: line, Column: column}
	if line > 0 {
		e.Context = readContextLines(file, line, 5)
	}
	return e
}

// WithLocationFromError extracts the location of a Go syntax error.
func (e *Error) WithLocationFromError(err error) *Error {
	var list scanner.ErrorList
	if stderrors.As(err, &list) && len(list) > 0 {
		pos := list[0].Pos
		return e.WithLocation(pos.Filename, pos.Line, pos.Column)
	}
	var single *scanner.Error
	if stderrors.As(err, &single) {
		return e.WithLocation(single.Pos.Filename, single.Pos.Line, single.Pos.Column)
	}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *Error) WithExample(ex string) *Error {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// WithContext adds custom context lines to the error.
func (e *Error) WithContext(lines []string) *Error {
	e.Context = lines
	return e
}

// Wrap wraps another error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates an Error from a registered error code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new Error with a formatted message (no code).
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an Error.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	return New(code).Wrap(err)
}

// FromRouteError maps errors returned by the router package to coded errors.
// Unrecognised errors are wrapped as E100.
func FromRouteError(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if stderrors.As(err, &e) {
		return e
	}

	var cfgErr *router.ConfigError
	var multi *router.MultiValidationError
	switch {
	case stderrors.As(err, &cfgErr):
		return New("E100").
			Wrap(err).
			WithDetail(fmt.Sprintf("Module %q could not be loaded: %v", cfgErr.Module, cfgErr.Err)).
			WithLocationFromError(cfgErr.Err).
			withFile(cfgErr.File)

	case stderrors.Is(err, os.ErrNotExist):
		return New("E101").Wrap(err).WithDetail(err.Error())

	case stderrors.Is(err, router.ErrInvalidExclude):
		return New("E102").Wrap(err).WithDetail(err.Error())

	case stderrors.As(err, &multi):
		code := "E110"
		if len(multi.Errors) > 0 && multi.Errors[0].Type == router.ErrorDuplicateName {
			code = "E111"
		}
		ve := New(code).Wrap(err)
		if len(multi.Errors) > 0 {
			ve.Detail = router.FormatValidationError(multi.Errors[0])
			ve.Location = &Location{File: multi.Errors[0].Files[0]}
		}
		return ve

	case stderrors.Is(err, router.ErrUnknownConverter):
		return New("E112").Wrap(err).WithDetail(err.Error())
	}

	return New("E100").Wrap(err).WithDetail(err.Error())
}

// withFile sets the location file when no line information was found.
func (e *Error) withFile(file string) *Error {
	if e.Location == nil && file != "" {
		e.Location = &Location{File: file}
	}
	return e
}
