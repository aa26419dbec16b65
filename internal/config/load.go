package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// configNames are the file names looked up in each standard location.
var configNames = []string{"framecore.yaml", "framecore.toml"}

// Load loads configuration with priority: defaults < file < flags, then
// validates the result.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	for _, dir := range []string{".", ConfigDir()} {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "FrameCore")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "FrameCore")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "framecore")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "framecore")
	}
}

// loadFromFile merges a YAML or TOML file, chosen by extension, into cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".yaml", ".yml", "":
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unknown config format %q", filepath.Ext(path))
	}
}
