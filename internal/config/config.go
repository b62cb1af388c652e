package config

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"golang.org/x/mod/modfile"

	"github.com/vango-dev/autoroute/internal/errors"
	"github.com/vango-dev/autoroute/pkg/router"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "autoroute.json"

	// YAMLConfigFileName is the name of the YAML configuration file.
	YAMLConfigFileName = "autoroute.yaml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "AUTOROUTE_"

	// DefaultRoutes is the default routes directory.
	DefaultRoutes = "app/routes"

	// DefaultOutputName is the file name of the generated routes file.
	DefaultOutputName = "routes_gen.go"

	// DefaultHost is the default demo server host.
	DefaultHost = "localhost"

	// DefaultPort is the default demo server port.
	DefaultPort = 8080

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = "10s"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreS3       = "s3"
)

// Config represents the complete autoroute configuration.
type Config struct {
	// Routes is the path to the routes directory.
	Routes string `json:"routes,omitempty" yaml:"routes,omitempty" env:"ROUTES"`

	// TrailingSlash appends a slash to every derived non-root pattern.
	TrailingSlash bool `json:"trailingSlash,omitempty" yaml:"trailingSlash,omitempty" env:"TRAILING_SLASH"`

	// Exclude is a glob; matching route files are ignored.
	Exclude string `json:"exclude,omitempty" yaml:"exclude,omitempty" env:"EXCLUDE"`

	// IndexName is the base name of a directory's index file.
	IndexName string `json:"indexName,omitempty" yaml:"indexName,omitempty" env:"INDEX_NAME"`

	// Output is the generated routes file.
	Output string `json:"output,omitempty" yaml:"output,omitempty" env:"OUTPUT"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty" yaml:"logLevel,omitempty" env:"LOG_LEVEL"`

	// Server contains demo server configuration.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty" envPrefix:"SERVER_"`

	// Store contains colour store configuration.
	Store StoreConfig `json:"store,omitempty" yaml:"store,omitempty" envPrefix:"STORE_"`

	// configPath stores the path where the config was loaded from.
	configPath string

	// dir is the project root.
	dir string
}

// ServerConfig contains demo server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty" env:"HOST"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty" env:"PORT"`

	// AppendSlash redirects misses to the slash-terminated path when it matches.
	AppendSlash bool `json:"appendSlash,omitempty" yaml:"appendSlash,omitempty" env:"APPEND_SLASH"`

	// ShutdownTimeout bounds graceful shutdown (e.g., "10s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty" yaml:"shutdownTimeout,omitempty" env:"SHUTDOWN_TIMEOUT"`
}

// StoreConfig selects and configures the colour store.
type StoreConfig struct {
	// Driver is one of memory, postgres, s3.
	Driver string `json:"driver,omitempty" yaml:"driver,omitempty" env:"DRIVER"`

	// DatabaseURL is the Postgres connection string.
	DatabaseURL string `json:"databaseURL,omitempty" yaml:"databaseURL,omitempty" env:"DATABASE_URL"`

	// Bucket is the S3 bucket.
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty" env:"BUCKET"`

	// Prefix is the S3 key prefix.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty" env:"PREFIX"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Routes:    DefaultRoutes,
		IndexName: router.DefaultIndexName,
		LogLevel:  DefaultLogLevel,
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Store: StoreConfig{
			Driver: StoreMemory,
		},
	}
}

// Load reads configuration from the specified directory.
//
// autoroute.json is preferred over autoroute.yaml. Without either file the
// defaults are used. An optional .env file is loaded into the process
// environment, then AUTOROUTE_* variables override file values.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	cfg := New()
	cfg.dir = dir
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFile reads configuration from the specified file path. The format is
// chosen by extension: .yaml and .yml are YAML, anything else JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E121").
				WithDetail("No configuration file at " + path).
				Wrap(err)
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E120").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that " + filepath.Base(path) + " is valid YAML").
				Wrap(err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E120").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON").
				Wrap(err)
		}
	}

	cfg.configPath = path
	cfg.dir = filepath.Dir(path)
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

// applyEnv loads .env from the project root and applies AUTOROUTE_* overrides.
// Variables already set in the environment win over .env values.
func (c *Config) applyEnv() error {
	if c.dir != "" {
		if err := godotenv.Load(filepath.Join(c.dir, ".env")); err != nil && !stderrors.Is(err, os.ErrNotExist) {
			return errors.New("E122").
				WithDetail("Failed to read .env: " + err.Error()).
				Wrap(err)
		}
	}

	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.New("E122").
			WithDetail(err.Error()).
			WithSuggestion("Check the " + EnvPrefix + "* variables in your environment or .env file").
			Wrap(err)
	}
	return nil
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Routes == "" {
		c.Routes = DefaultRoutes
	}
	if c.IndexName == "" {
		c.IndexName = router.DefaultIndexName
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Store.Driver == "" {
		c.Store.Driver = StoreMemory
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E122").
			WithDetail("server.port must be between 0 and 65535, got " + strconv.Itoa(c.Server.Port))
	}
	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return errors.New("E122").
			WithDetail("server.shutdownTimeout is not a duration: " + c.Server.ShutdownTimeout).
			Wrap(err)
	}

	switch c.Store.Driver {
	case StoreMemory:
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return errors.New("E122").
				WithDetail("store.databaseURL is required for the postgres driver").
				WithSuggestion("Set " + EnvPrefix + "STORE_DATABASE_URL")
		}
	case StoreS3:
		if c.Store.Bucket == "" {
			return errors.New("E122").
				WithDetail("store.bucket is required for the s3 driver").
				WithSuggestion("Set " + EnvPrefix + "STORE_BUCKET")
		}
	default:
		return errors.New("E122").
			WithDetail("store.driver must be memory, postgres or s3, got " + strconv.Quote(c.Store.Driver))
	}
	return nil
}

// Path returns the path where the config was loaded from ("" for defaults).
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the project root.
func (c *Config) Dir() string {
	return c.dir
}

// RoutesPath returns the absolute path to the routes directory.
func (c *Config) RoutesPath() string {
	return c.resolve(c.Routes)
}

// OutputPath returns the absolute path to the generated routes file.
func (c *Config) OutputPath() string {
	if c.Output == "" {
		return filepath.Join(c.RoutesPath(), DefaultOutputName)
	}
	return c.resolve(c.Output)
}

// Address returns the demo server listen address.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// ShutdownTimeout returns the parsed graceful shutdown timeout.
func (c *Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		d, _ = time.ParseDuration(DefaultShutdownTimeout)
	}
	return d
}

// RouterOptions returns the discovery options described by the config.
func (c *Config) RouterOptions() []router.Option {
	opts := []router.Option{
		router.WithTrailingSlash(c.TrailingSlash),
		router.WithIndexName(c.IndexName),
	}
	if c.Exclude != "" {
		opts = append(opts, router.WithExclude(c.Exclude))
	}
	return opts
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.dir, path)
}

// ModulePath reads the module path from go.mod in the project root.
func (c *Config) ModulePath() (string, error) {
	data, err := os.ReadFile(filepath.Join(c.dir, "go.mod"))
	if err != nil {
		return "", errors.New("E161").Wrap(err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", errors.New("E161").WithDetail("go.mod has no module directive")
	}
	return path, nil
}

// ImportPath returns the import path of a directory inside the project.
func (c *Config) ImportPath(dir string) (string, error) {
	module, err := c.ModulePath()
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(c.dir, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.CategoryConfig, "%s is outside the project root %s", dir, c.dir)
	}
	if rel == "." {
		return module, nil
	}
	return module + "/" + filepath.ToSlash(rel), nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root: the nearest
// directory holding a config file or go.mod.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E121").
				WithDetail("No " + ConfigFileName + ", " + YAMLConfigFileName + " or go.mod found in " + startDir + " or any parent directory").
				WithSuggestion("Run autoroute from inside a Go module")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
