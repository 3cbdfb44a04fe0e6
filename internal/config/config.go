// Package config loads task-analyzer settings from defaults, a YAML file,
// a .env file and the environment.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/task-analyzer/internal/analysis"
	"github.com/rcliao/task-analyzer/internal/store"
)

// Environment variables read by Load.
const (
	EnvConfig    = "TASK_ANALYZER_CONFIG"
	EnvDB        = "TASK_ANALYZER_DB"
	EnvBackend   = "TASK_ANALYZER_BACKEND"
	EnvAPIURL    = "TASK_ANALYZER_API_URL"
	EnvStrategy  = "TASK_ANALYZER_STRATEGY"
	EnvTimeout   = "TASK_ANALYZER_TIMEOUT"
	EnvLogLevel  = "TASK_ANALYZER_LOG_LEVEL"
	EnvLogFormat = "TASK_ANALYZER_LOG_FORMAT"
)

var (
	// ErrInvalidConfig is returned by Validate.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrConfigReadFailed is returned when the config file exists but cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")
)

// Config holds all settings.
type Config struct {
	Storage  Storage  `yaml:"storage"`
	Analysis Analysis `yaml:"analysis"`
	Log      Log      `yaml:"log"`

	pathDefaulted bool
}

// Storage selects the persistence backend.
type Storage struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// Analysis configures the scoring service client.
type Analysis struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	Strategy string        `yaml:"strategy"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Dir is the default directory for config and data.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".task-analyzer")
}

// DefaultPath returns the config file location.
func DefaultPath() string {
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Storage:  Storage{Backend: store.BackendSQLite},
		Analysis: Analysis{BaseURL: analysis.DefaultBaseURL, Strategy: string(analysis.DefaultStrategy)},
		Log:      Log{Level: "warn", Format: "text"},
	}
}

// Load builds a Config from defaults, the YAML file at path (a missing
// file is fine), a .env file in the working directory and environment
// variables, in increasing precedence.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, zerr.With(zerr.Wrap(err, ErrConfigReadFailed.Error()), "path", path)
		}
	case !os.IsNotExist(err):
		return cfg, zerr.With(zerr.Wrap(err, ErrConfigReadFailed.Error()), "path", path)
	}

	// .env never overrides variables that are already set
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	cfg.fillPath()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.Storage.Path, EnvDB)
	set(&c.Storage.Backend, EnvBackend)
	set(&c.Analysis.BaseURL, EnvAPIURL)
	set(&c.Analysis.Strategy, EnvStrategy)
	set(&c.Log.Level, EnvLogLevel)
	set(&c.Log.Format, EnvLogFormat)

	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return zerr.With(zerr.Wrap(err, ErrInvalidConfig.Error()), EnvTimeout, v)
		}
		c.Analysis.Timeout = d
	}
	return nil
}

// fillPath picks a default data file for the backend when none is set.
func (c *Config) fillPath() {
	if c.Storage.Path != "" {
		return
	}
	name := "tasks.db"
	if c.Storage.Backend == store.BackendJSON {
		name = "tasks.json"
	}
	c.Storage.Path = filepath.Join(Dir(), name)
	c.pathDefaulted = true
}

// Override applies non-empty command line values.
func (c *Config) Override(backend, path, apiURL string) {
	if backend != "" {
		c.Storage.Backend = backend
		if c.pathDefaulted {
			c.Storage.Path = ""
		}
	}
	if path != "" {
		c.Storage.Path = path
		c.pathDefaulted = false
	}
	if apiURL != "" {
		c.Analysis.BaseURL = apiURL
	}
	c.fillPath()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case store.BackendSQLite, store.BackendJSON:
	default:
		return zerr.With(ErrInvalidConfig, "storage.backend", c.Storage.Backend)
	}
	if _, err := analysis.ParseStrategy(c.Analysis.Strategy); err != nil {
		return zerr.With(ErrInvalidConfig, "analysis.strategy", c.Analysis.Strategy)
	}
	if c.Analysis.Timeout < 0 {
		return zerr.With(ErrInvalidConfig, "analysis.timeout", c.Analysis.Timeout.String())
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return zerr.With(ErrInvalidConfig, "log.level", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return zerr.With(ErrInvalidConfig, "log.format", c.Log.Format)
	}
	return nil
}
