package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	configDirName      = "sbsdiff"
	configFileName     = "config.toml"
	jsonConfigFileName = "config.json"
)

// AppConfig holds user defaults. Pointer fields distinguish "unset" from an
// explicit false.
type AppConfig struct {
	CollapseThreshold int   `json:"collapse_threshold" toml:"collapse_threshold"`
	ContextLines      int   `json:"context_lines" toml:"context_lines"`
	PatchContext      int   `json:"patch_context" toml:"patch_context"`
	TabWidth          int   `json:"tab_width" toml:"tab_width"`
	Compact           *bool `json:"compact" toml:"compact"`
	Color             *bool `json:"color" toml:"color"`
}

func Defaults() AppConfig {
	return AppConfig{
		CollapseThreshold: 8,
		ContextLines:      2,
		PatchContext:      3,
		TabWidth:          4,
	}
}

// CompactEnabled reports the compact setting, on unless disabled.
func (c AppConfig) CompactEnabled() bool {
	return c.Compact == nil || *c.Compact
}

// Load reads the first config file that exists in the default directory,
// preferring TOML over JSON.
func Load() (AppConfig, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return AppConfig{}, "", err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		jsonPath := filepath.Join(filepath.Dir(path), jsonConfigFileName)
		if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		}
	}
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

// LoadFromPath reads a config file, picking the format by extension. A missing
// or empty file yields the defaults.
func LoadFromPath(path string) (AppConfig, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return AppConfig{}, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse config: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c AppConfig) validate() error {
	if c.CollapseThreshold < 1 {
		return fmt.Errorf("collapse_threshold must be at least 1, got %d", c.CollapseThreshold)
	}
	if c.ContextLines < 0 {
		return fmt.Errorf("context_lines cannot be negative, got %d", c.ContextLines)
	}
	if c.PatchContext < 0 {
		return fmt.Errorf("patch_context cannot be negative, got %d", c.PatchContext)
	}
	if c.TabWidth < 1 {
		return fmt.Errorf("tab_width must be at least 1, got %d", c.TabWidth)
	}
	return nil
}

func DefaultPath() (string, error) {
	home, err := configHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func configHome() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return xdg, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}
