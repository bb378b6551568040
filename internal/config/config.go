// Package config loads the routespec command configuration from a TOML
// file, applies environment overrides and validates the result.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override file values.
const (
	EnvSpecTitle      = "ROUTESPEC_SPEC_TITLE"
	EnvSpecVersion    = "ROUTESPEC_SPEC_VERSION"
	EnvSpecFormat     = "ROUTESPEC_SPEC_FORMAT"
	EnvSpecOutput     = "ROUTESPEC_SPEC_OUTPUT"
	EnvServerAddr     = "ROUTESPEC_SERVER_ADDR"
	EnvServerShutdown = "ROUTESPEC_SERVER_SHUTDOWN_TIMEOUT"
	EnvLogLevel       = "ROUTESPEC_LOG_LEVEL"
	EnvLogFormat      = "ROUTESPEC_LOG_FORMAT"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the root configuration.
type Config struct {
	Spec    SpecConfig    `toml:"spec"`
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
}

// SpecConfig controls the generated document.
type SpecConfig struct {
	Title          string `toml:"title" validate:"required"`
	Version        string `toml:"version" validate:"required"`
	Description    string `toml:"description"`
	OpenAPIVersion string `toml:"openapi_version" validate:"required"`
	Format         string `toml:"format" validate:"oneof=json yaml"`
	Output         string `toml:"output"`
}

// ServerConfig controls the serve command.
type ServerConfig struct {
	Addr            string   `toml:"addr" validate:"required"`
	SpecPath        string   `toml:"spec_path" validate:"required,startswith=/"`
	SpecYAMLPath    string   `toml:"spec_yaml_path" validate:"required,startswith=/"`
	DocsPath        string   `toml:"docs_path" validate:"required,startswith=/"`
	CORSOrigins     []string `toml:"cors_origins" validate:"dive,required"`
	Rate            float64  `toml:"rate" validate:"gt=0"`
	Burst           int      `toml:"burst" validate:"gt=0"`
	ShutdownTimeout string   `toml:"shutdown_timeout"`
}

// ShutdownTimeoutDuration parses the shutdown timeout.
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" validate:"oneof=text json"`
}

// Logger builds a slog.Logger writing to w.
func (c *LoggingConfig) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch c.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Load reads path (when non-empty) and finalizes the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("%w: shutdown_timeout: %w", ErrInvalid, err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	setDefault(&c.Spec.Title, "API")
	setDefault(&c.Spec.Version, "0.1.0")
	setDefault(&c.Spec.OpenAPIVersion, "3.1.0")
	setDefault(&c.Spec.Format, "json")

	setDefault(&c.Server.Addr, ":8080")
	setDefault(&c.Server.SpecPath, "/openapi.json")
	setDefault(&c.Server.SpecYAMLPath, "/openapi.yaml")
	setDefault(&c.Server.DocsPath, "/docs")
	setDefault(&c.Server.ShutdownTimeout, "30s")
	if c.Server.CORSOrigins == nil {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Server.Rate == 0 {
		c.Server.Rate = 10
	}
	if c.Server.Burst == 0 {
		c.Server.Burst = 20
	}

	setDefault(&c.Logging.Level, "info")
	setDefault(&c.Logging.Format, "text")
}

func (c *Config) loadEnv() {
	setFromEnv(&c.Spec.Title, EnvSpecTitle)
	setFromEnv(&c.Spec.Version, EnvSpecVersion)
	setFromEnv(&c.Spec.Format, EnvSpecFormat)
	setFromEnv(&c.Spec.Output, EnvSpecOutput)
	setFromEnv(&c.Server.Addr, EnvServerAddr)
	setFromEnv(&c.Server.ShutdownTimeout, EnvServerShutdown)
	setFromEnv(&c.Logging.Level, EnvLogLevel)
	setFromEnv(&c.Logging.Format, EnvLogFormat)
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

func setFromEnv(field *string, key string) {
	if v := os.Getenv(key); v != "" {
		*field = v
	}
}
