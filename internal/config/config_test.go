package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/autoroute/internal/errors"
	"github.com/vango-dev/autoroute/pkg/router"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func errorCode(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Routes != DefaultRoutes {
		t.Errorf("Routes = %q, want %q", cfg.Routes, DefaultRoutes)
	}
	if cfg.IndexName != router.DefaultIndexName {
		t.Errorf("IndexName = %q, want %q", cfg.IndexName, router.DefaultIndexName)
	}
	if cfg.Server.Port != DefaultPort || cfg.Server.Host != DefaultHost {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Store.Driver != StoreMemory {
		t.Errorf("Store.Driver = %q, want %q", cfg.Store.Driver, StoreMemory)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q, want empty", cfg.Path())
	}
	if cfg.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), dir)
	}
	if want := filepath.Join(dir, "app", "routes"); cfg.RoutesPath() != want {
		t.Errorf("RoutesPath() = %q, want %q", cfg.RoutesPath(), want)
	}
	if want := filepath.Join(dir, "app", "routes", DefaultOutputName); cfg.OutputPath() != want {
		t.Errorf("OutputPath() = %q, want %q", cfg.OutputPath(), want)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), `{
  "routes": "web/routes",
  "trailingSlash": true,
  "exclude": "*_draft.go",
  "output": "web/gen/routes_gen.go",
  "server": {
    "port": 9000,
    "appendSlash": true
  },
  "store": {
    "driver": "postgres",
    "databaseURL": "postgres://localhost/colors"
  }
}
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Path() != filepath.Join(dir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
	if cfg.RoutesPath() != filepath.Join(dir, "web", "routes") {
		t.Errorf("RoutesPath() = %q", cfg.RoutesPath())
	}
	if cfg.OutputPath() != filepath.Join(dir, "web", "gen", "routes_gen.go") {
		t.Errorf("OutputPath() = %q", cfg.OutputPath())
	}
	if !cfg.TrailingSlash || cfg.Exclude != "*_draft.go" {
		t.Errorf("TrailingSlash = %v, Exclude = %q", cfg.TrailingSlash, cfg.Exclude)
	}
	if cfg.Server.Port != 9000 || !cfg.Server.AppendSlash {
		t.Errorf("Server = %+v", cfg.Server)
	}
	// Unset fields keep their defaults.
	if cfg.Server.Host != DefaultHost || cfg.IndexName != router.DefaultIndexName {
		t.Errorf("defaults not applied: host=%q index=%q", cfg.Server.Host, cfg.IndexName)
	}
	if cfg.Store.Driver != StorePostgres || cfg.Store.DatabaseURL != "postgres://localhost/colors" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, YAMLConfigFileName), `routes: site/routes
indexName: __init__
server:
  host: 0.0.0.0
  shutdownTimeout: 3s
store:
  driver: s3
  bucket: colors
  prefix: demo/
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Routes != "site/routes" || cfg.IndexName != "__init__" {
		t.Errorf("Routes = %q, IndexName = %q", cfg.Routes, cfg.IndexName)
	}
	if cfg.Address() != "0.0.0.0:8080" {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if cfg.ShutdownTimeout() != 3*time.Second {
		t.Errorf("ShutdownTimeout() = %v", cfg.ShutdownTimeout())
	}
	if cfg.Store.Bucket != "colors" || cfg.Store.Prefix != "demo/" {
		t.Errorf("Store = %+v", cfg.Store)
	}
}

func TestLoadPrefersJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), `{"routes": "from-json"}`)
	writeFile(t, filepath.Join(dir, YAMLConfigFileName), "routes: from-yaml\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Routes != "from-json" {
		t.Errorf("Routes = %q, want from-json", cfg.Routes)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", ConfigFileName, `{"routes": `},
		{"yaml", YAMLConfigFileName, "server:\n  port: [1, 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, tt.file), tt.content)

			_, err := Load(dir)
			if code := errorCode(err); code != "E120" {
				t.Errorf("error = %v (code %q), want E120", err, code)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), ConfigFileName))
	if code := errorCode(err); code != "E121" {
		t.Errorf("error = %v, want E121", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), `{"exclude": "*.tmp", "server": {"port": 9000}}`)

	t.Setenv("AUTOROUTE_EXCLUDE", "*_test_only.go")
	t.Setenv("AUTOROUTE_SERVER_PORT", "9090")
	t.Setenv("AUTOROUTE_TRAILING_SLASH", "true")
	t.Setenv("AUTOROUTE_STORE_DRIVER", "s3")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Exclude != "*_test_only.go" {
		t.Errorf("Exclude = %q", cfg.Exclude)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if !cfg.TrailingSlash {
		t.Error("TrailingSlash should be true")
	}
	if cfg.Store.Driver != StoreS3 {
		t.Errorf("Store.Driver = %q", cfg.Store.Driver)
	}
}

func TestEnvInvalid(t *testing.T) {
	t.Setenv("AUTOROUTE_SERVER_PORT", "eighty")

	_, err := Load(t.TempDir())
	if code := errorCode(err); code != "E122" {
		t.Errorf("error = %v, want E122", err)
	}
}

func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "AUTOROUTE_STORE_BUCKET=from-dotenv\nAUTOROUTE_STORE_PREFIX=from-dotenv\n")

	t.Setenv("AUTOROUTE_STORE_PREFIX", "from-env")
	t.Cleanup(func() { os.Unsetenv("AUTOROUTE_STORE_BUCKET") })

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Store.Bucket != "from-dotenv" {
		t.Errorf("Store.Bucket = %q, want from-dotenv", cfg.Store.Bucket)
	}
	if cfg.Store.Prefix != "from-env" {
		t.Errorf("Store.Prefix = %q, want from-env", cfg.Store.Prefix)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad timeout", func(c *Config) { c.Server.ShutdownTimeout = "soon" }, true},
		{"postgres without url", func(c *Config) { c.Store.Driver = StorePostgres }, true},
		{"s3 without bucket", func(c *Config) { c.Store.Driver = StoreS3 }, true},
		{"s3 with bucket", func(c *Config) { c.Store.Driver = StoreS3; c.Store.Bucket = "b" }, false},
		{"unknown driver", func(c *Config) { c.Store.Driver = "redis" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && errorCode(err) != "E122" {
				t.Errorf("error code = %q, want E122", errorCode(err))
			}
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/demo\n")
	nested := filepath.Join(root, "app", "routes", "colors")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	if got != root {
		t.Errorf("FindProjectRoot() = %q, want %q", got, root)
	}

	// A config file closer to the start directory wins.
	writeFile(t, filepath.Join(root, "app", ConfigFileName), `{}`)
	got, err = FindProjectRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(root, "app") {
		t.Errorf("FindProjectRoot() = %q, want %q", got, filepath.Join(root, "app"))
	}
}

func TestModulePathAndImportPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "// demo\nmodule example.com/demo\n\ngo 1.24\n")

	cfg, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}

	module, err := cfg.ModulePath()
	if err != nil || module != "example.com/demo" {
		t.Fatalf("ModulePath() = %q, %v", module, err)
	}

	tests := []struct {
		dir     string
		want    string
		wantErr bool
	}{
		{root, "example.com/demo", false},
		{filepath.Join(root, "app", "routes"), "example.com/demo/app/routes", false},
		{filepath.Dir(root), "", true},
	}
	for _, tt := range tests {
		got, err := cfg.ImportPath(tt.dir)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ImportPath(%q) = %q, %v; want %q", tt.dir, got, err, tt.want)
		}
	}
}

func TestModulePathMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.ModulePath(); errorCode(err) != "E161" {
		t.Errorf("ModulePath() error = %v, want E161", err)
	}
}

func TestRouterOptions(t *testing.T) {
	cfg := New()
	cfg.TrailingSlash = true
	cfg.Exclude = "*_draft.go"
	cfg.IndexName = "__init__"

	opts := router.NewScanner(".", cfg.RouterOptions()...).Options()
	if !opts.TrailingSlash || opts.Exclude != "*_draft.go" || opts.IndexName != "__init__" {
		t.Errorf("Options = %+v", opts)
	}
}
