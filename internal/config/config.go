package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LFroesch/fsnav/internal/logger"
)

const (
	dirName  = "fsnav"
	fileName = "fsnav-config.json"
)

// Config holds all fsnav configuration
type Config struct {
	PreviewLines   int     `json:"preview_lines"`
	PreviewOnStart bool    `json:"preview_on_start"`
	SplitRatio     float64 `json:"split_ratio"`
	VerticalSplit  bool    `json:"vertical_split"`
	Shell          string  `json:"shell"` // overrides $SHELL when spawning a shell on exit
	StatusSeconds  int     `json:"status_seconds"`
	ShowSizes      bool    `json:"show_sizes"`
	LogLevel       string  `json:"log_level"` // debug, info, warn or error
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		PreviewLines:   50,
		PreviewOnStart: false,
		SplitRatio:     0.5,
		VerticalSplit:  true,
		Shell:          "",
		StatusSeconds:  3,
		ShowSizes:      true,
		LogLevel:       "info",
	}
}

// Dir returns ~/.config/fsnav
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", dirName), nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads config from ~/.config/fsnav/fsnav-config.json.
// It never fails: missing or broken files yield the defaults.
func Load() *Config {
	defaultConfig := Default()

	configPath, err := GetConfigPath()
	if err != nil {
		logger.Error("Failed to resolve config path: %v", err)
		return defaultConfig
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if err := Save(defaultConfig); err != nil {
			logger.Warn("Failed to save default config: %v", err)
		}
		return defaultConfig
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		logger.Warn("Failed to parse config file %s: %v, using defaults", configPath, err)
		return defaultConfig
	}

	config.clamp(defaultConfig)
	return config
}

func (c *Config) clamp(defaults *Config) {
	if c.PreviewLines <= 0 {
		c.PreviewLines = defaults.PreviewLines
	} else if c.PreviewLines < 10 {
		logger.Warn("PreviewLines too low (%d), using minimum of 10", c.PreviewLines)
		c.PreviewLines = 10
	} else if c.PreviewLines > 500 {
		logger.Warn("PreviewLines too high (%d), using maximum of 500", c.PreviewLines)
		c.PreviewLines = 500
	}

	if c.SplitRatio <= 0 {
		c.SplitRatio = defaults.SplitRatio
	} else if c.SplitRatio < 0.2 {
		logger.Warn("SplitRatio too low (%.2f), using minimum of 0.2", c.SplitRatio)
		c.SplitRatio = 0.2
	} else if c.SplitRatio > 0.8 {
		logger.Warn("SplitRatio too high (%.2f), using maximum of 0.8", c.SplitRatio)
		c.SplitRatio = 0.8
	}

	if c.StatusSeconds <= 0 {
		c.StatusSeconds = defaults.StatusSeconds
	} else if c.StatusSeconds > 30 {
		logger.Warn("StatusSeconds too high (%d), using maximum of 30", c.StatusSeconds)
		c.StatusSeconds = 30
	}

	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	} else if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		logger.Warn("%v, using %s", err, defaults.LogLevel)
		c.LogLevel = defaults.LogLevel
	}
}

// Save writes config to ~/.config/fsnav/fsnav-config.json
func Save(config *Config) error {
	configDir, err := Dir()
	if err != nil {
		logger.Error("Failed to get home directory: %v", err)
		return err
	}
	configPath := filepath.Join(configDir, fileName)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		logger.Error("Failed to create config directory %s: %v", configDir, err)
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		logger.Error("Failed to marshal config: %v", err)
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		logger.Error("Failed to write config file %s: %v", configPath, err)
		return fmt.Errorf("cannot write config file: %w", err)
	}

	return nil
}
