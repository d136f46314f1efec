package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration: defaults, overridden by an optional
// YAML file. An explicit path takes priority over the standard
// locations; flag overrides are applied by the caller.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	cfg.normalize()
	return cfg, nil
}

// findConfigFile looks for a config in the standard locations.
func findConfigFile() string {
	candidates := []string{"./sundial.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "sundial", "config.yaml"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// normalize pulls out-of-range values back to something drawable.
func (c *Config) normalize() {
	if c.Render.Scale < 1 {
		c.Render.Scale = 100
	}
	if c.Render.CanvasWidth < 1 {
		c.Render.CanvasWidth = 1000
	}
	if c.Render.CanvasHeight < 1 {
		c.Render.CanvasHeight = 1000
	}
}

// SaveTo writes the config to a specific path, creating parent
// directories as needed.
func (c *Config) SaveTo(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
