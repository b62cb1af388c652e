package router

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrLoad matches every ConfigError via errors.Is.
	ErrLoad = errors.New("route unit failed to load")

	// ErrNoReverseMatch is returned when no route can produce a URL for a name.
	ErrNoReverseMatch = errors.New("no reverse match")

	// ErrUnknownConverter is returned for a placeholder with an unsupported type.
	ErrUnknownConverter = errors.New("unknown path converter")

	// ErrInvalidExclude is returned when the exclude pattern does not compile.
	ErrInvalidExclude = errors.New("invalid exclude pattern")
)

// ConfigError reports a route file that could not be loaded.
// A broken route file is never silently dropped: discovery fails as a whole.
type ConfigError struct {
	// Module is the unit identifier that failed (e.g., "colors/add").
	Module string

	// File is the source file path.
	File string

	// Err is the underlying load error.
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("loading route module %q (%s): %v", e.Module, e.File, e.Err)
}

// Unwrap returns the underlying load error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrLoad.
func (e *ConfigError) Is(target error) bool {
	return target == ErrLoad
}
