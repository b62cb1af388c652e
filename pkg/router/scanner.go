package router

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Scanner enumerates route candidates under a root directory.
type Scanner struct {
	rootDir string
	opts    Options
	exclude glob.Glob
}

// NewScanner creates a new route scanner.
func NewScanner(rootDir string, opts ...Option) *Scanner {
	return &Scanner{
		rootDir: rootDir,
		opts:    buildOptions(opts),
	}
}

// Root returns the scanned directory.
func (s *Scanner) Root() string {
	return s.rootDir
}

// Options returns the effective scanner options.
func (s *Scanner) Options() Options {
	return s.opts
}

// Candidates walks the root directory and returns every candidate file in
// route order (see SortCandidates).
//
// Files not ending in the unit suffix, test files ("_test" + suffix) and
// files matching the exclude pattern are skipped. A missing or unreadable
// root is returned as is.
func (s *Scanner) Candidates() ([]Candidate, error) {
	if s.opts.Exclude != "" && s.exclude == nil {
		g, err := glob.Compile(s.opts.Exclude)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidExclude, s.opts.Exclude, err)
		}
		s.exclude = g
	}

	var candidates []Candidate

	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip directories
		if d.IsDir() {
			return nil
		}

		if !strings.HasSuffix(path, s.opts.Suffix) {
			return nil
		}

		// Skip test files
		if strings.HasSuffix(path, "_test"+s.opts.Suffix) {
			return nil
		}

		c, err := s.candidate(path)
		if err != nil {
			return err
		}

		if s.excluded(path, c.RelPath) {
			s.opts.Logger.Debug("route file excluded", "file", path, "pattern", s.opts.Exclude)
			return nil
		}

		candidates = append(candidates, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	SortCandidates(candidates)
	return candidates, nil
}

// candidate builds the Candidate for a walked file.
func (s *Scanner) candidate(path string) (Candidate, error) {
	relPath, err := filepath.Rel(s.rootDir, path)
	if err != nil {
		return Candidate{}, err
	}
	relPath = filepath.ToSlash(relPath)

	module := strings.TrimSuffix(relPath, s.opts.Suffix)
	segments := strings.Split(module, "/")

	return Candidate{
		Path:     path,
		RelPath:  relPath,
		Segments: segments,
		Module:   module,
		IsIndex:  segments[len(segments)-1] == s.opts.IndexName,
	}, nil
}

// excluded reports whether the exclude pattern matches the walked path or
// the root-relative path.
func (s *Scanner) excluded(path, relPath string) bool {
	if s.exclude == nil {
		return false
	}
	return s.exclude.Match(filepath.ToSlash(path)) || s.exclude.Match(relPath)
}

// Discover walks root, loads every candidate with loader, and returns the
// routing table in match order.
//
// A candidate whose unit fails to load aborts discovery with a *ConfigError.
// A candidate without a view is skipped.
func Discover[H any](root string, loader Loader[H], opts ...Option) ([]Route[H], error) {
	return Scan(NewScanner(root, opts...), loader)
}

// Scan loads the candidates of s with loader and builds the routing table.
// Routes with a URL override are ordered by that URL rather than their file.
func Scan[H any](s *Scanner, loader Loader[H]) ([]Route[H], error) {
	candidates, err := s.Candidates()
	if err != nil {
		return nil, err
	}

	routes := make([]Route[H], 0, len(candidates))
	keys := make([]orderKey, 0, len(candidates))
	for _, c := range candidates {
		unit, err := loader.Load(c)
		if err != nil {
			return nil, &ConfigError{Module: c.Module, File: c.Path, Err: err}
		}
		if unit == nil {
			s.opts.Logger.Debug("route file has no view", "file", c.Path)
			continue
		}

		pattern, name := resolve(c, unit.Override, s.opts.TrailingSlash)
		routes = append(routes, Route[H]{
			Pattern:  pattern,
			Name:     name,
			Handler:  unit.View,
			Module:   c.Module,
			File:     c.Path,
			Override: unit.Override,
		})

		// A URL override places the route by its URL, not its file.
		if unit.Override.URL != nil {
			keys = append(keys, patternKey(pattern))
		} else {
			keys = append(keys, keyOf(c))
		}
	}
	sortRoutes(routes, keys)

	s.opts.Logger.Debug("routes discovered", "root", s.rootDir, "candidates", len(candidates), "routes", len(routes))
	return routes, nil
}
