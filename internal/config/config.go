// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"quote-pricing/core/types"
	"quote-pricing/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Quotes contains quoting defaults
	Quotes QuoteConfig `json:"quotes"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// QuoteConfig contains quoting defaults
type QuoteConfig struct {
	// DefaultCurrency is used when a service's rules name no currency
	DefaultCurrency types.Currency `json:"default_currency"`

	// RulesPath is the default rules file, overridable per invocation
	RulesPath string `json:"rules_path"`

	// ValidateOnLoad lints rule files before pricing with them
	ValidateOnLoad bool `json:"validate_on_load"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format"`

	// ShowTrace includes the evaluation trace in the rendered quote record
	ShowTrace bool `json:"show_trace"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	rulesPath := filepath.Join(homeDir, ".quote-pricing", "rules.hcl")

	return &Config{
		Version: "1.0",
		Quotes: QuoteConfig{
			DefaultCurrency: types.CurrencyUSD,
			RulesPath:       rulesPath,
			ValidateOnLoad:  true,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowTrace:     false,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
