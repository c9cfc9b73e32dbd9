package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port           string   `yaml:"port"`
	ArtifactsDir   string   `yaml:"artifacts_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	Log            Log      `yaml:"log"`
}

type Log struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func Default() *Config {
	return &Config{
		Port:         "8080",
		ArtifactsDir: "export",
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:3000",
		},
		Log: Log{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}

// Load reads the optional YAML config file and applies flag overrides.
func Load() (*Config, error) {
	configPath := flag.String("config", "", "Path to YAML config file")
	port := flag.String("port", "", "Server port (overrides config)")
	artifacts := flag.String("artifacts", "", "Directory with pipeline artifacts (overrides config)")
	flag.Parse()

	cfg := Default()

	if *configPath != "" {
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", *configPath, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", *configPath, err)
		}
	}

	if *port != "" {
		cfg.Port = *port
	}
	if *artifacts != "" {
		cfg.ArtifactsDir = *artifacts
	}

	return cfg, nil
}

// Parse reads a config from YAML bytes on top of the defaults.
func Parse(raw []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
