// Package config loads courserec settings from defaults, an optional YAML
// file and COURSEREC_ environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/poiesic/courserec/artifact"
	"github.com/poiesic/courserec/recommend"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "COURSEREC_"

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "COURSEREC_CONFIG"

// DefaultConfigPaths are tried in order when no path is given.
var DefaultConfigPaths = []string{
	"courserec.yaml",
	"courserec.yml",
}

// ErrInvalidConfig matches every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full application configuration, loaded by Load.
type Config struct {
	Artifact  ArtifactConfig  `koanf:"artifact"`
	Recommend RecommendConfig `koanf:"recommend"`
	Batch     BatchConfig     `koanf:"batch"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ArtifactConfig selects where the artifacts are read from. A non-empty
// Store takes precedence over Path.
type ArtifactConfig struct {
	Path  string `koanf:"path"`
	Store string `koanf:"store"`
}

// RecommendConfig holds query defaults. Limit applies when a request has none.
type RecommendConfig struct {
	Limit int `koanf:"limit"`
}

// BatchConfig sizes the batch worker pool. ReportInterval is the number of
// queries between progress reports.
type BatchConfig struct {
	PoolSize       int `koanf:"pool_size"`
	ReportInterval int `koanf:"report_interval"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	// RateLimit is the number of requests allowed per IP per RateWindow.
	// Zero disables rate limiting.
	RateLimit  int           `koanf:"rate_limit"`
	RateWindow time.Duration `koanf:"rate_window"`
}

// LoggingConfig sets the slog level: debug, info, warn or error.
type LoggingConfig struct {
	Level string `koanf:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Artifact: ArtifactConfig{
			Path: artifact.DefaultPath,
		},
		Recommend: RecommendConfig{
			Limit: recommend.DefaultLimit,
		},
		Batch: BatchConfig{
			PoolSize:       runtime.NumCPU(),
			ReportInterval: 100,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit:    100,
			RateWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from three layers:
//  1. Defaults
//  2. YAML file: path, else $COURSEREC_CONFIG, else the first of DefaultConfigPaths that exists
//  3. Environment variables: COURSEREC_SERVER_ADDR -> server.addr
//
// An explicitly named file that does not exist is an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath, err := findConfigFile(path)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile(path string) (string, error) {
	if path == "" {
		path = os.Getenv(ConfigPathEnvVar)
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file %s: %w", path, err)
		}
		return path, nil
	}

	for _, candidate := range DefaultConfigPaths {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// envTransformFunc maps an environment variable to a config path. The first
// underscore after the prefix separates the section from the key:
//   - COURSEREC_ARTIFACT_PATH -> artifact.path
//   - COURSEREC_BATCH_POOL_SIZE -> batch.pool_size
//
// COURSEREC_CONFIG is not a setting and maps to "".
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok {
		return ""
	}
	return section + "." + rest
}

// Validate checks the configuration.
//
// Validation rules:
//   - recommend.limit is not negative
//   - batch.pool_size and batch.report_interval are at least 1
//   - server.addr is set and both timeouts are positive
//   - server.rate_limit is not negative, and rate_window is positive when it is set
//   - logging.level is one of debug, info, warn, error
//
// NOT validated:
//   - whether the artifact path or store exists (checked when loading)
func (c *Config) Validate() error {
	if c.Recommend.Limit < 0 {
		return fmt.Errorf("%w: recommend.limit must not be negative, got %d", ErrInvalidConfig, c.Recommend.Limit)
	}
	if c.Batch.PoolSize < 1 {
		return fmt.Errorf("%w: batch.pool_size must be at least 1, got %d", ErrInvalidConfig, c.Batch.PoolSize)
	}
	if c.Batch.ReportInterval < 1 {
		return fmt.Errorf("%w: batch.report_interval must be at least 1, got %d", ErrInvalidConfig, c.Batch.ReportInterval)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalidConfig)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("%w: server timeouts must be positive", ErrInvalidConfig)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("%w: server.rate_limit must not be negative, got %d", ErrInvalidConfig, c.Server.RateLimit)
	}
	if c.Server.RateLimit > 0 && c.Server.RateWindow <= 0 {
		return fmt.Errorf("%w: server.rate_window must be positive", ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	level, _ := ParseLevel(c.Logging.Level)
	return level
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, name)
	}
}
