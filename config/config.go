// Package config provides configuration loading and management for the
// salience pipeline.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete salience configuration
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Output    OutputConfig    `yaml:"output"`
	NATS      NATSConfig      `yaml:"nats"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Watch     WatchConfig     `yaml:"watch"`
}

// InputConfig configures corpus loading
type InputConfig struct {
	// Patterns are glob patterns for input files (csv, jsonl, html)
	Patterns []string `yaml:"patterns"`
}

// AnalysisConfig configures the salience computation
type AnalysisConfig struct {
	// TopN is the global vocabulary size (default: 20)
	TopN int `yaml:"top_n"`
	// Exclude lists normalized terms dropped after filtering
	Exclude []string `yaml:"exclude"`
	// KeepTags are POS tag prefixes to retain (default: NNG, VV, VA)
	KeepTags []string `yaml:"keep_tags"`
	// DictionaryEnding is appended to verb/adjective stems (default: 다)
	DictionaryEnding string `yaml:"dictionary_ending"`
	// Workers bounds concurrent tokenization (0 = NumCPU)
	Workers int `yaml:"workers"`
}

// TokenizerConfig configures the external morphological analyzer
type TokenizerConfig struct {
	// Command is the analyzer executable (e.g. "kiwi-cli")
	Command string `yaml:"command"`
	// Args are extra arguments passed on every invocation
	Args []string `yaml:"args"`
	// UserDict is an optional user dictionary file of form/tag entries
	UserDict string `yaml:"user_dict"`
}

// OutputConfig configures artifact writing
type OutputConfig struct {
	// Dir is the output directory (default: ./output)
	Dir string `yaml:"dir"`
	// Format is the artifact format: csv or tsv (default: csv)
	Format string `yaml:"format"`
}

// NATSConfig configures optional run-event publishing
type NATSConfig struct {
	// URL is the NATS server URL (empty = publishing disabled)
	URL string `yaml:"url"`
	// Subject is the publish subject (default: salience.run.completed)
	Subject string `yaml:"subject"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	// Addr is the listen address for /metrics (empty = disabled)
	Addr string `yaml:"addr"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	// Debounce is how long to wait for more changes before re-running
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			TopN:             20,
			KeepTags:         []string{"NNG", "VV", "VA"},
			DictionaryEnding: "다",
		},
		Tokenizer: TokenizerConfig{
			Command: "kiwi-cli",
		},
		Output: OutputConfig{
			Dir:    "output",
			Format: "csv",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Analysis.TopN <= 0 {
		return fmt.Errorf("analysis.top_n must be positive, got %d", c.Analysis.TopN)
	}
	for _, w := range c.Analysis.Exclude {
		if w == "" {
			return fmt.Errorf("analysis.exclude must not contain empty entries")
		}
	}
	if c.Tokenizer.Command == "" {
		return fmt.Errorf("tokenizer.command is required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	switch c.Output.Format {
	case "csv", "tsv":
	default:
		return fmt.Errorf("output.format must be csv or tsv, got %q", c.Output.Format)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Input
	if len(other.Input.Patterns) > 0 {
		c.Input.Patterns = other.Input.Patterns
	}

	// Analysis
	if other.Analysis.TopN != 0 {
		c.Analysis.TopN = other.Analysis.TopN
	}
	if len(other.Analysis.Exclude) > 0 {
		c.Analysis.Exclude = other.Analysis.Exclude
	}
	if len(other.Analysis.KeepTags) > 0 {
		c.Analysis.KeepTags = other.Analysis.KeepTags
	}
	if other.Analysis.DictionaryEnding != "" {
		c.Analysis.DictionaryEnding = other.Analysis.DictionaryEnding
	}
	if other.Analysis.Workers != 0 {
		c.Analysis.Workers = other.Analysis.Workers
	}

	// Tokenizer
	if other.Tokenizer.Command != "" {
		c.Tokenizer.Command = other.Tokenizer.Command
	}
	if len(other.Tokenizer.Args) > 0 {
		c.Tokenizer.Args = other.Tokenizer.Args
	}
	if other.Tokenizer.UserDict != "" {
		c.Tokenizer.UserDict = other.Tokenizer.UserDict
	}

	// Output
	if other.Output.Dir != "" {
		c.Output.Dir = other.Output.Dir
	}
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Subject != "" {
		c.NATS.Subject = other.NATS.Subject
	}

	// Metrics
	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}

	// Watch
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
}
