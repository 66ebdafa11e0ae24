// Package config loads runtime settings from an optional YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application settings.
type Config struct {
	Port     string `yaml:"port"`
	Storage  string `yaml:"storage"` // "sqlite" or "memory"
	DBPath   string `yaml:"db_path"`
	SlotKey  string `yaml:"slot_key"`
	LogLevel string `yaml:"log_level"`
}

// PathEnv names the environment variable holding the config file path.
const PathEnv = "TASKLIST_CONFIG"

// Load reads the file named by TASKLIST_CONFIG (if set), applies environment
// overrides and fills in defaults.
func Load() (Config, error) {
	return LoadFile(os.Getenv(PathEnv))
}

// LoadFile is Load with an explicit file path. An empty path skips the file.
func LoadFile(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)
	normalize(&cfg)

	if cfg.Storage != "sqlite" && cfg.Storage != "memory" {
		return cfg, fmt.Errorf("storage must be 'sqlite' or 'memory', got %q", cfg.Storage)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TASKLIST_STORAGE"); v != "" {
		cfg.Storage = v
	}
	if v := os.Getenv("TASKLIST_SLOT_KEY"); v != "" {
		cfg.SlotKey = v
	}
	if v := os.Getenv("TASKLIST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func normalize(cfg *Config) {
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	if cfg.Storage == "" {
		cfg.Storage = "sqlite"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./data/tasklist.db"
	}
	if strings.TrimSpace(cfg.SlotKey) == "" {
		cfg.SlotKey = "tasks"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}
