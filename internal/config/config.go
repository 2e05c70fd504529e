package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config represents the main configuration structure.
type Config struct {
	// IgnorePatterns are glob patterns matched against frame URLs;
	// matching frames are elided from rendered stacks.
	IgnorePatterns []string `json:"ignorePatterns,omitempty"`

	// SourceMaps maps a generated script URL to the path of its source
	// map file on disk.
	SourceMaps map[string]string `json:"sourceMaps,omitempty"`

	// MaxRecords bounds the in-memory record buffer. Defaults to 1000.
	MaxRecords int `json:"maxRecords,omitempty"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{MaxRecords: 1000}
}

// Load reads and parses the configuration file.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if config.MaxRecords == 0 {
		config.MaxRecords = 1000
	}
	return &config, nil
}

// validate checks if the configuration is valid.
func validate(config *Config) error {
	if config.MaxRecords < 0 {
		return fmt.Errorf("maxRecords must not be negative")
	}

	for url, path := range config.SourceMaps {
		if url == "" {
			return fmt.Errorf("source map entry with empty script URL")
		}
		if path == "" {
			return fmt.Errorf("source map for %q: path is required", url)
		}
	}

	return nil
}
