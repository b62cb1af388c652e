package router

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeTree creates files under a temp directory and returns its path.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		fullPath := filepath.Join(dir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(fullPath), err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", fullPath, err)
		}
	}
	return dir
}

// colorsTree is the demo layout: three root files (one without a view) and
// a colors directory with a literal, an index and a parameter route.
var colorsTree = map[string]string{
	"index.go":               "package routes",
	"current-time.go":        "package routes",
	"helpers.go":             "package routes",
	"colors/index.go":        "package colors",
	"colors/add.go":          "package colors",
	"colors/<slug:slug>.go":  "package colors",
	"colors/index_test.go":   "package colors",
	"colors/README.md":       "not a route",
	"colors/static/logo.svg": "<svg/>",
}

// moduleLoader exposes every module except the given ones, with the module
// identifier as the view.
func moduleLoader(withoutView ...string) LoaderFunc[string] {
	skip := make(map[string]bool)
	for _, m := range withoutView {
		skip[m] = true
	}
	return func(c Candidate) (*Unit[string], error) {
		if skip[c.Module] {
			return nil, nil
		}
		return &Unit[string]{View: c.Module}, nil
	}
}

func patterns[H any](routes []Route[H]) []string {
	out := make([]string, len(routes))
	for i, r := range routes {
		out[i] = r.Pattern
	}
	return out
}

func names[H any](routes []Route[H]) []string {
	out := make([]string, len(routes))
	for i, r := range routes {
		out[i] = r.Name
	}
	return out
}

func TestDiscoverOrder(t *testing.T) {
	dir := writeTree(t, colorsTree)

	routes, err := Discover(dir, moduleLoader("helpers"))
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	wantPatterns := []string{"current-time", "colors/add", "colors", "colors/<slug:slug>", ""}
	if got := patterns(routes); !reflect.DeepEqual(got, wantPatterns) {
		t.Errorf("patterns = %q, want %q", got, wantPatterns)
	}

	wantNames := []string{"current_time", "colors_add", "colors", "colors_slug", ""}
	if got := names(routes); !reflect.DeepEqual(got, wantNames) {
		t.Errorf("names = %q, want %q", got, wantNames)
	}

	wantModules := []string{"current-time", "colors/add", "colors/index", "colors/<slug:slug>", "index"}
	for i, r := range routes {
		if r.Handler != wantModules[i] || r.Module != wantModules[i] {
			t.Errorf("routes[%d] handler/module = %q/%q, want %q", i, r.Handler, r.Module, wantModules[i])
		}
		if !filepath.IsAbs(r.File) {
			t.Errorf("routes[%d].File = %q, want absolute path under root", i, r.File)
		}
	}
}

func TestDiscoverTrailingSlash(t *testing.T) {
	dir := writeTree(t, colorsTree)

	routes, err := Discover(dir, moduleLoader("helpers"), WithTrailingSlash(true))
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	want := []string{"current-time/", "colors/add/", "colors/", "colors/<slug:slug>/", ""}
	if got := patterns(routes); !reflect.DeepEqual(got, want) {
		t.Errorf("patterns = %q, want %q", got, want)
	}

	// Names ignore the trailing slash.
	wantNames := []string{"current_time", "colors_add", "colors", "colors_slug", ""}
	if got := names(routes); !reflect.DeepEqual(got, wantNames) {
		t.Errorf("names = %q, want %q", got, wantNames)
	}
}

func TestDiscoverExclude(t *testing.T) {
	dir := writeTree(t, colorsTree)

	tests := []struct {
		exclude string
		want    []string
	}{
		{"*-time.go", []string{"colors/add", "colors", "colors/<slug:slug>", ""}},
		{"colors/*", []string{"current-time", ""}},
		{"*/add.go", []string{"current-time", "colors", "colors/<slug:slug>", ""}},
		{"*.nomatch", []string{"current-time", "colors/add", "colors", "colors/<slug:slug>", ""}},
	}

	for _, tt := range tests {
		routes, err := Discover(dir, moduleLoader("helpers"), WithExclude(tt.exclude))
		if err != nil {
			t.Fatalf("Discover(exclude=%q) error: %v", tt.exclude, err)
		}
		if got := patterns(routes); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Discover(exclude=%q) patterns = %q, want %q", tt.exclude, got, tt.want)
		}
	}
}

func TestDiscoverExcludeWinsOverView(t *testing.T) {
	dir := writeTree(t, colorsTree)

	loaded := make(map[string]bool)
	loader := LoaderFunc[string](func(c Candidate) (*Unit[string], error) {
		loaded[c.Module] = true
		return &Unit[string]{View: c.Module}, nil
	})

	if _, err := Discover(dir, loader, WithExclude("*<slug:slug>.go")); err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if loaded["colors/<slug:slug>"] {
		t.Error("excluded file was loaded")
	}
	if !loaded["helpers"] {
		t.Error("helpers should still be loaded")
	}
}

func TestDiscoverOverrides(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"colors/anything.go": "package colors",
		"colors/named.go":    "package colors",
		"colors/moved.go":    "package colors",
	})

	loader := LoaderFunc[string](func(c Candidate) (*Unit[string], error) {
		switch c.Module {
		case "colors/anything":
			return &Unit[string]{View: c.Module, Override: NewOverride(WithURL("/custom"), WithName("custom_name"))}, nil
		case "colors/named":
			return &Unit[string]{View: c.Module, Override: NewOverride(WithName("pick-me"))}, nil
		case "colors/moved":
			return &Unit[string]{View: c.Module, Override: NewOverride(WithURL("/elsewhere/<int:id>/"))}, nil
		}
		return nil, nil
	})

	routes, err := Discover(dir, loader, WithTrailingSlash(true))
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	got := make(map[string]Route[string])
	for _, r := range routes {
		got[r.Module] = r
	}

	tests := []struct {
		module      string
		wantPattern string
		wantName    string
	}{
		{"colors/anything", "custom", "custom_name"},
		{"colors/named", "colors/named/", "pick-me"},
		{"colors/moved", "elsewhere/<int:id>", "elsewhere_id"},
	}
	for _, tt := range tests {
		r, ok := got[tt.module]
		if !ok {
			t.Errorf("missing route for %s", tt.module)
			continue
		}
		if r.Pattern != tt.wantPattern || r.Name != tt.wantName {
			t.Errorf("%s = (%q, %q), want (%q, %q)", tt.module, r.Pattern, r.Name, tt.wantPattern, tt.wantName)
		}
	}
}

func TestDiscoverOrdersOverriddenURLs(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"index.go":         "package routes",
		"colors/index.go":  "package colors",
		"colors/add.go":    "package colors",
		"colors/detail.go": "package colors",
		"archive/old.go":   "package archive",
	})

	loader := LoaderFunc[string](func(c Candidate) (*Unit[string], error) {
		switch c.Module {
		case "colors/detail":
			return &Unit[string]{View: c.Module, Override: NewOverride(WithURL("/colors/<slug:slug>"))}, nil
		case "archive/old":
			return &Unit[string]{View: c.Module, Override: NewOverride(WithURL("/<int:year>"))}, nil
		}
		return &Unit[string]{View: c.Module}, nil
	})

	routes, err := Discover(dir, loader)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	want := []string{"colors/add", "colors/index", "colors/detail", "index", "archive/old"}
	var got []string
	for _, r := range routes {
		got = append(got, r.Module)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("modules = %q, want %q", got, want)
	}

	var httpRoutes []HTTPRoute
	for _, r := range routes {
		httpRoutes = append(httpRoutes, HTTPRoute{Pattern: r.Pattern, Name: r.Name})
	}
	table, err := NewTable(httpRoutes)
	if err != nil {
		t.Fatalf("NewTable() error: %v", err)
	}
	m, ok := table.Match("/colors/add")
	if !ok || m.Route.Name != "colors_add" {
		t.Errorf("/colors/add matched %+v, want colors_add", m)
	}
	m, ok = table.Match("/colors/red")
	if !ok || m.Route.Name != "colors_slug" {
		t.Errorf("/colors/red matched %+v, want colors_slug", m)
	}
	m, ok = table.Match("/2024")
	if !ok || m.Route.Name != "year" || m.Params["year"] != "2024" {
		t.Errorf("/2024 matched %+v, want year", m)
	}
}

func TestDiscoverNoViewIsNotAnError(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"helpers.go": "package routes",
	})

	routes, err := Discover(dir, moduleLoader("helpers"))
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(routes) != 0 {
		t.Errorf("len(routes) = %d, want 0", len(routes))
	}
}

func TestDiscoverLoadError(t *testing.T) {
	dir := writeTree(t, colorsTree)

	cause := errors.New("syntax error")
	loader := LoaderFunc[string](func(c Candidate) (*Unit[string], error) {
		if c.Module == "colors/add" {
			return nil, cause
		}
		return &Unit[string]{View: c.Module}, nil
	})

	routes, err := Discover(dir, loader)
	if err == nil {
		t.Fatal("Discover() error = nil, want load error")
	}
	if routes != nil {
		t.Errorf("routes = %v, want nil (no partial result)", routes)
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error %T is not *ConfigError", err)
	}
	if cfgErr.Module != "colors/add" {
		t.Errorf("Module = %q, want colors/add", cfgErr.Module)
	}
	if !errors.Is(err, ErrLoad) {
		t.Error("errors.Is(err, ErrLoad) = false")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"), moduleLoader())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Discover() error = %v, want fs.ErrNotExist", err)
	}
}

func TestDiscoverIdempotent(t *testing.T) {
	dir := writeTree(t, colorsTree)

	first, err := Discover(dir, moduleLoader("helpers"), WithTrailingSlash(true))
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	second, err := Discover(dir, moduleLoader("helpers"), WithTrailingSlash(true))
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second discovery differs:\n%v\n%v", first, second)
	}
}

func TestScannerCandidates(t *testing.T) {
	dir := writeTree(t, colorsTree)

	candidates, err := NewScanner(dir).Candidates()
	if err != nil {
		t.Fatalf("Candidates() error: %v", err)
	}

	want := []string{
		"helpers.go",
		"current-time.go",
		"colors/add.go",
		"colors/index.go",
		"colors/<slug:slug>.go",
		"index.go",
	}
	var got []string
	for _, c := range candidates {
		got = append(got, c.RelPath)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("candidates = %q, want %q", got, want)
	}

	for _, c := range candidates {
		wantIndex := c.RelPath == "index.go" || c.RelPath == "colors/index.go"
		if c.IsIndex != wantIndex {
			t.Errorf("%s IsIndex = %v, want %v", c.RelPath, c.IsIndex, wantIndex)
		}
	}
}

func TestScannerCustomSuffixAndIndex(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"__init__.route":        "",
		"about.route":           "",
		"colors/__init__.route": "",
		"colors/index.route":    "",
		"about_test.route":      "",
		"ignored.go":            "package routes",
	})

	routes, err := Discover(dir, moduleLoader(), WithSuffix(".route"), WithIndexName("__init__"))
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	want := []string{"colors/index", "colors", "about", ""}
	if got := patterns(routes); !reflect.DeepEqual(got, want) {
		t.Errorf("patterns = %q, want %q", got, want)
	}
}
