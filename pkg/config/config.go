// Package config loads the server configuration from an optional YAML file
// with environment variable overrides. The resulting Config is built once at
// startup and treated as read-only for the life of the process.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment names. Development mode populates error detail fields in
// bridge-originated error responses; production mode suppresses them.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DefaultMaxUploadBytes caps the size of a multipart upload body (10MB).
const DefaultMaxUploadBytes = 10 << 20

// Config holds the server configuration.
type Config struct {
	// Addr is the listen address for the single HTTP socket.
	Addr string `yaml:"addr"`

	// Env selects development or production behavior.
	Env string `yaml:"env"`

	// GraphQLPath is the query-execution endpoint served through the bridge.
	GraphQLPath string `yaml:"graphqlPath"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"logLevel"`

	// LogFormat is the log output format (text, json).
	LogFormat string `yaml:"logFormat"`

	// MaxUploadBytes caps the multipart body size accepted by the upload
	// preprocessor. Zero means DefaultMaxUploadBytes.
	MaxUploadBytes int64 `yaml:"maxUploadBytes"`
}

// Default returns the configuration used when no file or overrides are given.
func Default() *Config {
	return &Config{
		Addr:           ":3000",
		Env:            EnvDevelopment,
		GraphQLPath:    "/graphql",
		LogLevel:       "info",
		LogFormat:      "text",
		MaxUploadBytes: DefaultMaxUploadBytes,
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment variable overrides, in that order of precedence (later wins).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays GQLBRIDGE_* environment variables onto the config.
func (c *Config) applyEnv() {
	if v := os.Getenv("GQLBRIDGE_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("GQLBRIDGE_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("GQLBRIDGE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GQLBRIDGE_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("env must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env)
	}
	if c.GraphQLPath == "" || c.GraphQLPath[0] != '/' {
		return fmt.Errorf("graphqlPath must start with /, got %q", c.GraphQLPath)
	}
	if c.MaxUploadBytes == 0 {
		c.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("maxUploadBytes must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}

// IsDevelopment reports whether error responses should carry detail messages.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}
