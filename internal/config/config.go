// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the application configuration from YAML, falling
// back to safe defaults when no file is present or the file is invalid.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format  string `yaml:"format"`
		Verbose bool   `yaml:"verbose"`
		Debug   bool   `yaml:"debug"`
		NoColor bool   `yaml:"no_color"`
	} `yaml:"defaults"`

	// Obfuscation settings
	Obfuscation struct {
		// ConfidenceThreshold drops detected entities scored below it.
		ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	} `yaml:"obfuscation"`

	// Integrity settings
	Integrity struct {
		// Enabled controls the advisory balance verification pass.
		Enabled bool `yaml:"enabled"`
	} `yaml:"integrity"`

	// Parser settings for statement input
	Parser struct {
		// MaxPages caps PDF page processing to bound run time.
		MaxPages int `yaml:"max_pages"`
	} `yaml:"parser"`
}

// LoadConfig loads configuration from the specified file path. An empty
// path returns the defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	// Set default values
	config.Defaults.Format = "text"
	config.Defaults.Verbose = false
	config.Defaults.Debug = false
	config.Defaults.NoColor = false
	config.Obfuscation.ConfidenceThreshold = 0.85
	config.Integrity.Enabled = true
	config.Parser.MaxPages = 50

	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadConfigOrDefault loads the configuration and falls back to the
// defaults on any error, so callers always get a usable config.
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		cfg, _ = LoadConfig("")
	}
	return cfg
}

// FindConfigFile looks for a configuration file in standard locations.
func FindConfigFile() string {
	candidates := []string{
		"stmt-obfuscator.yaml",
		"stmt-obfuscator.yml",
		".stmt-obfuscator.yaml",
		".stmt-obfuscator.yml",
	}
	for _, c := range candidates {
		if fileExists(c) {
			return c
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".config", "stmt-obfuscator", "config.yaml")
		if fileExists(p) {
			return p
		}
	}

	return ""
}

func validate(config *Config) error {
	if t := config.Obfuscation.ConfidenceThreshold; t < 0 || t > 1 {
		return fmt.Errorf("confidence_threshold must be in [0,1], got %v", t)
	}
	if config.Parser.MaxPages <= 0 {
		return fmt.Errorf("max_pages must be positive, got %d", config.Parser.MaxPages)
	}
	switch config.Defaults.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported format %q", config.Defaults.Format)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
