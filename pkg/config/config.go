// Package config loads and saves the taskflow settings file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	xdgAppName = "taskflow"
	configFile = "config.json"
)

// Defaults applied when the config file is absent or fields are empty.
const (
	DefaultCalendar = "Tasks"
	DefaultCategory = "personal"
	DefaultPriority = "medium"
	DefaultSortMode = "priority"
)

// Config holds the user-tunable settings: the Google Calendar mirror
// target and the defaults the CLI fills in when flags are omitted.
type Config struct {
	Calendar        string `json:"calendar"`
	DefaultCategory string `json:"defaultCategory"`
	DefaultPriority string `json:"defaultPriority"`
	SortMode        string `json:"sortMode"`
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName, configFile), nil
}

func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return withDefaults(&Config{}), nil
		}
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return withDefaults(&cfg), nil
}

func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}

func withDefaults(cfg *Config) *Config {
	if cfg.Calendar == "" {
		cfg.Calendar = DefaultCalendar
	}
	if cfg.DefaultCategory == "" {
		cfg.DefaultCategory = DefaultCategory
	}
	if cfg.DefaultPriority == "" {
		cfg.DefaultPriority = DefaultPriority
	}
	if cfg.SortMode == "" {
		cfg.SortMode = DefaultSortMode
	}
	return cfg
}
