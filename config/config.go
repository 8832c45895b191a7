// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package config holds the settings of an elaboration run, loaded from YAML.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration of an elaboration run.
type Config struct {
	Match       MatchConfig       `yaml:"match"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Log         LogConfig         `yaml:"log"`
	Check       CheckConfig       `yaml:"check"`
}

// MatchConfig controls the policy for pattern-match diagnostics.
type MatchConfig struct {
	// NonExhaustive is "warn" (default) or "error".
	NonExhaustive string `yaml:"non_exhaustive,omitempty"`
	// Redundant is "warn" (default) or "ignore".
	Redundant string `yaml:"redundant,omitempty"`
}

// DiagnosticsConfig limits diagnostic output.
type DiagnosticsConfig struct {
	// MaxErrors stops elaboration after the given number of errors. Zero means no limit.
	MaxErrors int `yaml:"max_errors,omitempty"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	// Level is "off" (default), "debug", "info", "warn" or "error".
	Level string `yaml:"level,omitempty"`
	// Format is "text" (default) or "json".
	Format string `yaml:"format,omitempty"`
}

// CheckConfig enables internal consistency checks.
type CheckConfig struct {
	// Generalization verifies that no generalized type-variable is free in the environment.
	Generalization bool `yaml:"generalization,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var cfg Config
	cfg.setDefaults()
	return cfg
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses YAML configuration from bytes. The path argument is used only for error messages.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.setDefaults()
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Match.NonExhaustive == "" {
		c.Match.NonExhaustive = "warn"
	}
	if c.Match.Redundant == "" {
		c.Match.Redundant = "warn"
	}
	if c.Log.Level == "" {
		c.Log.Level = "off"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) validate(path string) error {
	switch c.Match.NonExhaustive {
	case "warn", "error":
	default:
		return fmt.Errorf("%s: match.non_exhaustive: expected warn or error, found %q", path, c.Match.NonExhaustive)
	}
	switch c.Match.Redundant {
	case "warn", "ignore":
	default:
		return fmt.Errorf("%s: match.redundant: expected warn or ignore, found %q", path, c.Match.Redundant)
	}
	if c.Diagnostics.MaxErrors < 0 {
		return fmt.Errorf("%s: diagnostics.max_errors must not be negative", path)
	}
	if _, ok := parseLevel(c.Log.Level); !ok && c.Log.Level != "off" {
		return fmt.Errorf("%s: log.level: unknown level %q", path, c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%s: log.format: expected text or json, found %q", path, c.Log.Format)
	}
	return nil
}

// NonExhaustiveIsError returns true if non-exhaustive matches are errors rather than warnings.
func (c *Config) NonExhaustiveIsError() bool { return c.Match.NonExhaustive == "error" }

// ReportRedundant returns true if redundant clauses are reported.
func (c *Config) ReportRedundant() bool { return c.Match.Redundant != "ignore" }

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return 0, false
}

// Logger creates a logger writing to w with the configured level and format. When logging
// is off, the logger discards all records.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, ok := parseLevel(c.Log.Level)
	if !ok || w == nil {
		return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
