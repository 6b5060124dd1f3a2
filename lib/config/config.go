// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "NBT_CONFIG"

// Config is the configuration for the nbt command.
type Config struct {
	// Compression is the filter used when writing tag files: none,
	// gzip, zlib, zstd, or lz4.
	// Default: gzip
	Compression string `yaml:"compression"`

	// DetectCompression selects the input filter from the stream
	// header. When false, input is read with Compression.
	// Default: true
	DetectCompression bool `yaml:"detect_compression"`

	// MaxDepth is the nesting limit for decode and encode. A negative
	// value disables the limit.
	// Default: 512
	MaxDepth int `yaml:"max_depth"`

	// Output configures rendered output.
	Output OutputConfig `yaml:"output"`

	// LogLevel is the minimum slog level: debug, info, warn, or error.
	// Default: info
	LogLevel string `yaml:"log_level"`
}

// OutputConfig configures rendered output.
type OutputConfig struct {
	// Compact disables indentation of JSON output.
	Compact bool `yaml:"compact"`

	// Color controls ANSI styling of diagnostic dumps: auto (when
	// stdout is a terminal), always, or never.
	// Default: auto
	Color string `yaml:"color"`

	// Indent is the per-level indent for JSON and diagnostic output.
	// Default: two spaces
	Indent string `yaml:"indent"`

	// MaxItems abbreviates long arrays in diagnostic dumps. Negative
	// prints every element.
	// Default: 32
	MaxItems int `yaml:"max_items"`
}

// Accepted values for enumerated fields.
var (
	compressionValues = []string{"none", "gzip", "zlib", "zstd", "lz4"}
	colorValues       = []string{"auto", "always", "never"}
	logLevelValues    = []string{"debug", "info", "warn", "error"}
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Compression:       "gzip",
		DetectCompression: true,
		MaxDepth:          512,
		Output: OutputConfig{
			Compact:  false,
			Color:    "auto",
			Indent:   "  ",
			MaxItems: 32,
		},
		LogLevel: "info",
	}
}

// Load loads the file named by NBT_CONFIG, or returns Default when the
// variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Fields the
// file omits keep their defaults; fields the file names but this
// package does not know are an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	cfg.expandVariables()
	return cfg, nil
}

// loadFile decodes a single configuration file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} in string fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Compression = expandVars(c.Compression, vars)
	c.LogLevel = expandVars(c.LogLevel, vars)
	c.Output.Color = expandVars(c.Output.Color, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, checking
// vars before the environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(compressionValues, c.Compression) {
		errs = append(errs, fmt.Errorf("compression must be one of %v, got %q", compressionValues, c.Compression))
	}
	if c.MaxDepth == 0 {
		errs = append(errs, fmt.Errorf("max_depth must be positive, or negative for no limit"))
	}
	if !slices.Contains(colorValues, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be one of %v, got %q", colorValues, c.Output.Color))
	}
	if c.Output.MaxItems == 0 {
		errs = append(errs, fmt.Errorf("output.max_items must be positive, or negative for no limit"))
	}
	if !slices.Contains(logLevelValues, c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level must be one of %v, got %q", logLevelValues, c.LogLevel))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
