// Package config provides configuration management for the edit engine.
// Configuration is loaded from environment variables with sensible defaults;
// a YAML file can supply the same settings, with the environment winning.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// Default values
	DefaultPort         = 8090
	DefaultLogLevel     = "info"
	DefaultOutputFormat = "mp4"

	// Environment variable names
	EnvPort             = "CLIPFORGE_PORT"
	EnvLogLevel         = "CLIPFORGE_LOG_LEVEL"
	EnvConfigFile       = "CLIPFORGE_CONFIG_FILE"
	EnvAuthToken        = "CLIPFORGE_AUTH_TOKEN"
	EnvProcessorBaseURL = "CLIPFORGE_PROCESSOR_URL"
	EnvProcessorToken   = "CLIPFORGE_PROCESSOR_TOKEN"
	EnvStorageBaseURL   = "CLIPFORGE_STORAGE_URL"
	EnvStorageToken     = "CLIPFORGE_STORAGE_TOKEN"
	EnvOutputFormat     = "CLIPFORGE_OUTPUT_FORMAT"
	EnvOffline          = "CLIPFORGE_OFFLINE"
)

// Config defines the application configuration interface
type Config interface {
	Port() int
	LogLevel() string
	AuthToken() string
	ProcessorBaseURL() string
	ProcessorToken() string
	StorageBaseURL() string
	StorageToken() string
	OutputFormat() string
	Offline() bool
}

// EnvConfig reads configuration from a YAML file and environment variables
type EnvConfig struct {
	port             int
	logLevel         string
	authToken        string
	processorBaseURL string
	processorToken   string
	storageBaseURL   string
	storageToken     string
	outputFormat     string
	offline          bool
}

// fileConfig mirrors the YAML layout of the optional config file.
type fileConfig struct {
	Port         int    `yaml:"port"`
	LogLevel     string `yaml:"log_level"`
	AuthToken    string `yaml:"auth_token"`
	OutputFormat string `yaml:"output_format"`
	Offline      bool   `yaml:"offline"`
	Processor    struct {
		BaseURL string `yaml:"base_url"`
		Token   string `yaml:"token"`
	} `yaml:"processor"`
	Storage struct {
		BaseURL string `yaml:"base_url"`
		Token   string `yaml:"token"`
	} `yaml:"storage"`
}

// New creates a new EnvConfig: defaults, then the optional YAML file, then
// environment variable overrides.
func New() (*EnvConfig, error) {
	cfg := &EnvConfig{
		port:         DefaultPort,
		logLevel:     DefaultLogLevel,
		outputFormat: DefaultOutputFormat,
	}

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if p := os.Getenv(EnvPort); p != "" {
		var port int
		if _, err := fmt.Sscanf(p, "%d", &port); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid %s: port must be between 1 and 65535", EnvPort)
		}
		cfg.port = port
	}

	if ll := os.Getenv(EnvLogLevel); ll != "" {
		cfg.logLevel = ll
	}
	if t := os.Getenv(EnvAuthToken); t != "" {
		cfg.authToken = t
	}
	if u := os.Getenv(EnvProcessorBaseURL); u != "" {
		cfg.processorBaseURL = u
	}
	if t := os.Getenv(EnvProcessorToken); t != "" {
		cfg.processorToken = t
	}
	if u := os.Getenv(EnvStorageBaseURL); u != "" {
		cfg.storageBaseURL = u
	}
	if t := os.Getenv(EnvStorageToken); t != "" {
		cfg.storageToken = t
	}
	if f := os.Getenv(EnvOutputFormat); f != "" {
		cfg.outputFormat = f
	}
	if v := os.Getenv(EnvOffline); v == "1" || v == "true" {
		cfg.offline = true
	}

	return cfg, nil
}

func (c *EnvConfig) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if fc.Port != 0 {
		if fc.Port < 1 || fc.Port > 65535 {
			return fmt.Errorf("config file: port must be between 1 and 65535")
		}
		c.port = fc.Port
	}
	if fc.LogLevel != "" {
		c.logLevel = fc.LogLevel
	}
	if fc.AuthToken != "" {
		c.authToken = fc.AuthToken
	}
	if fc.OutputFormat != "" {
		c.outputFormat = fc.OutputFormat
	}
	if fc.Offline {
		c.offline = true
	}
	if fc.Processor.BaseURL != "" {
		c.processorBaseURL = fc.Processor.BaseURL
	}
	if fc.Processor.Token != "" {
		c.processorToken = fc.Processor.Token
	}
	if fc.Storage.BaseURL != "" {
		c.storageBaseURL = fc.Storage.BaseURL
	}
	if fc.Storage.Token != "" {
		c.storageToken = fc.Storage.Token
	}
	return nil
}

// Port returns the HTTP server port
func (c *EnvConfig) Port() int {
	return c.port
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

// AuthToken returns the bearer token required by the local API, or empty for
// no auth.
func (c *EnvConfig) AuthToken() string {
	return c.authToken
}

// ProcessorBaseURL returns the Media Processing Service address.
func (c *EnvConfig) ProcessorBaseURL() string {
	return c.processorBaseURL
}

// ProcessorToken returns the Media Processing Service bearer token.
func (c *EnvConfig) ProcessorToken() string {
	return c.processorToken
}

// StorageBaseURL returns the Media Storage Service address.
func (c *EnvConfig) StorageBaseURL() string {
	return c.storageBaseURL
}

// StorageToken returns the Media Storage Service bearer token.
func (c *EnvConfig) StorageToken() string {
	return c.storageToken
}

// OutputFormat returns the container format requested for job results.
func (c *EnvConfig) OutputFormat() string {
	return c.outputFormat
}

// Offline reports whether the engine runs against in-process stubs instead
// of the external services.
func (c *EnvConfig) Offline() bool {
	return c.offline
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
