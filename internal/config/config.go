// Package config loads viewer settings from a YAML or TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/nicky-ayoub/ebitcompare/internal/compare"
)

// Config is the complete viewer configuration.
type Config struct {
	Window WindowConfig `yaml:"window" toml:"window"`
	View   ViewConfig   `yaml:"view" toml:"view"`
	Input  InputConfig  `yaml:"input" toml:"input"`
	Log    LogConfig    `yaml:"log" toml:"log"`
	Watch  WatchConfig  `yaml:"watch" toml:"watch"`
}

// WindowConfig sizes the application window.
type WindowConfig struct {
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	Title  string `yaml:"title" toml:"title"`
}

// ViewConfig holds zoom limits and the pan clamp policy.
type ViewConfig struct {
	MinScale    float64 `yaml:"min_scale" toml:"min_scale"`
	MaxScale    float64 `yaml:"max_scale" toml:"max_scale"`
	ClampPolicy string  `yaml:"clamp_policy" toml:"clamp_policy"` // "coverage" or "centered"
}

// InputConfig tunes pointer and wheel handling.
type InputConfig struct {
	WheelSensitivity float64 `yaml:"wheel_sensitivity" toml:"wheel_sensitivity"`
	// Wheel deltas from ebiten are in lines; browsers report pixels.
	WheelLineHeight float64 `yaml:"wheel_line_height" toml:"wheel_line_height"`
	HandleWidth     int     `yaml:"handle_width" toml:"handle_width"`
}

// LogConfig selects the log level and an optional log file.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"`
}

// WatchConfig controls reloading images when they change on disk.
type WatchConfig struct {
	Enabled    bool `yaml:"enabled" toml:"enabled"`
	MaxRetries int  `yaml:"max_retries" toml:"max_retries"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Watch: WatchConfig{Enabled: true}}
	cfg.applyDefaults()
	return cfg
}

// Load reads a configuration file. The format is chosen by extension:
// .toml for TOML, anything else is parsed as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{Watch: WatchConfig{Enabled: true}}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing toml config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing yaml config: %w", err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Window.Width == 0 {
		c.Window.Width = 1280
	}
	if c.Window.Height == 0 {
		c.Window.Height = 800
	}
	if c.Window.Title == "" {
		c.Window.Title = "ebitcompare"
	}
	if c.View.MinScale == 0 {
		c.View.MinScale = 1
	}
	if c.View.MaxScale == 0 {
		c.View.MaxScale = 5
	}
	if c.View.ClampPolicy == "" {
		c.View.ClampPolicy = "coverage"
	}
	if c.Input.WheelSensitivity == 0 {
		c.Input.WheelSensitivity = 0.0015
	}
	if c.Input.WheelLineHeight == 0 {
		c.Input.WheelLineHeight = 100
	}
	if c.Input.HandleWidth == 0 {
		c.Input.HandleWidth = 24
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Watch.MaxRetries == 0 {
		c.Watch.MaxRetries = 5
	}
}

// Validate reports settings that cannot produce a usable view.
func (c *Config) Validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("window size must not be negative: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.View.MinScale <= 0 {
		return fmt.Errorf("view.min_scale must be positive, got %v", c.View.MinScale)
	}
	if c.View.MaxScale < c.View.MinScale {
		return fmt.Errorf("view.max_scale %v is below view.min_scale %v", c.View.MaxScale, c.View.MinScale)
	}
	if _, err := compare.ParseClampPolicy(c.View.ClampPolicy); err != nil {
		return fmt.Errorf("view.clamp_policy: %w", err)
	}
	if c.Input.WheelSensitivity < 0 {
		return fmt.Errorf("input.wheel_sensitivity must not be negative, got %v", c.Input.WheelSensitivity)
	}
	if c.Watch.MaxRetries < 0 {
		return fmt.Errorf("watch.max_retries must not be negative, got %d", c.Watch.MaxRetries)
	}
	return nil
}
