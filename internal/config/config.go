package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSize       = 20
	DefaultSpeedMs    = 200
	DefaultMinSize    = 2
	DefaultMaxSize    = 100
	DefaultMinSpeedMs = 10
	DefaultMaxSpeedMs = 2000
	DefaultTheme      = ThemeAuto
)

const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Size    int          `yaml:"size" toml:"size"`
	SpeedMs int          `yaml:"speed_ms" toml:"speed_ms"`
	Seed    int64        `yaml:"seed" toml:"seed"`
	Theme   string       `yaml:"theme" toml:"theme"`
	Limits  LimitsConfig `yaml:"limits" toml:"limits"`
}

// LimitsConfig bounds the size and speed sliders.
type LimitsConfig struct {
	MinSize    int `yaml:"min_size" toml:"min_size"`
	MaxSize    int `yaml:"max_size" toml:"max_size"`
	MinSpeedMs int `yaml:"min_speed_ms" toml:"min_speed_ms"`
	MaxSpeedMs int `yaml:"max_speed_ms" toml:"max_speed_ms"`
}

func DefaultConfig() *Config {
	return &Config{
		Size:    DefaultSize,
		SpeedMs: DefaultSpeedMs,
		Theme:   DefaultTheme,
		Limits: LimitsConfig{
			MinSize:    DefaultMinSize,
			MaxSize:    DefaultMaxSize,
			MinSpeedMs: DefaultMinSpeedMs,
			MaxSpeedMs: DefaultMaxSpeedMs,
		},
	}
}

// Load reads a yaml or toml file, chosen by extension, over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var b strings.Builder
		if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
			return err
		}
		data = []byte(b.String())
	} else {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		data = out
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	l := c.Limits
	if l.MinSize < DefaultMinSize {
		return fmt.Errorf("%w: limits.min_size must be at least %d, got %d", ErrInvalid, DefaultMinSize, l.MinSize)
	}
	if l.MaxSize < l.MinSize {
		return fmt.Errorf("%w: limits.max_size %d below min_size %d", ErrInvalid, l.MaxSize, l.MinSize)
	}
	if l.MinSpeedMs <= 0 || l.MaxSpeedMs < l.MinSpeedMs {
		return fmt.Errorf("%w: speed range [%d, %d]", ErrInvalid, l.MinSpeedMs, l.MaxSpeedMs)
	}
	if c.Size < l.MinSize || c.Size > l.MaxSize {
		return fmt.Errorf("%w: size %d not in [%d, %d]", ErrInvalid, c.Size, l.MinSize, l.MaxSize)
	}
	if c.SpeedMs < l.MinSpeedMs || c.SpeedMs > l.MaxSpeedMs {
		return fmt.Errorf("%w: speed_ms %d not in [%d, %d]", ErrInvalid, c.SpeedMs, l.MinSpeedMs, l.MaxSpeedMs)
	}
	switch c.Theme {
	case ThemeAuto, ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("%w: theme %q", ErrInvalid, c.Theme)
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
