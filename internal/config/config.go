package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// FileName is the config file kept looks for in the working directory.
const FileName = "kept.yaml"

// Config is the top-level kept.yaml configuration. Environment variables
// override file values.
type Config struct {
	DataFile string `yaml:"data_file" env:"KEPT_DATA_FILE"`
	LogLevel string `yaml:"log_level" env:"KEPT_LOG_LEVEL"`
}

// Load reads a kept.yaml file from disk and applies env overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("reading config environment: %w", err)
	}
	if cfg.DataFile == "" {
		cfg.DataFile = Default().DataFile
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default() *Config {
	return &Config{
		DataFile: "kept.json",
		LogLevel: "info",
	}
}
