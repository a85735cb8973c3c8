// Package config loads user settings from ~/.tabedit/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"example.com/tabedit/pkg/keymap"
	"example.com/tabedit/pkg/viewport"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Chords is one chord or a list of chords. Both `save: ctrl+s` and
// `save: [ctrl+s, f2]` are accepted.
type Chords []string

// UnmarshalYAML accepts a scalar or a sequence.
func (c *Chords) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Value == "" {
			*c = Chords{}
			return nil
		}
		*c = Chords{n.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := n.Decode(&list); err != nil {
			return err
		}
		*c = list
		return nil
	}
	return fmt.Errorf("line %d: chords must be a string or a list: %w", n.Line, ErrInvalid)
}

// ThemeConfig picks a builtin theme, optionally imports a theme file and
// overrides single colors by role name.
type ThemeConfig struct {
	Name   string            `yaml:"name"`
	File   string            `yaml:"file"`
	Colors map[string]string `yaml:"colors"`
}

// Config holds user configuration values.
type Config struct {
	Keymap        map[string]Chords `yaml:"keymap"`
	TabWidth      int               `yaml:"tab_width"`
	Wrap          string            `yaml:"wrap"`
	HistoryLimit  int               `yaml:"history_limit"`
	DoubleClickMS int               `yaml:"double_click_ms"`
	LineNumbers   bool              `yaml:"line_numbers"`
	AutoFollow    bool              `yaml:"auto_follow"`
	FinderDepth   int               `yaml:"finder_depth"`
	Theme         ThemeConfig       `yaml:"theme"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		TabWidth:      viewport.DefaultTabWidth,
		Wrap:          viewport.WrapNone.String(),
		HistoryLimit:  1000,
		DoubleClickMS: 500,
		LineNumbers:   true,
		AutoFollow:    true,
		FinderDepth:   3,
		Theme:         ThemeConfig{Name: "default"},
	}
}

// Load loads configuration from the provided path. If the file does not
// exist, defaults are returned. Keys missing from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath is ~/.tabedit/config.yaml, or "" without a home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tabedit", "config.yaml")
}

// LoadDefault attempts to read ~/.tabedit/config.yaml.
func LoadDefault() (*Config, error) {
	path := DefaultPath()
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks ranges and names without touching the terminal.
func (c *Config) Validate() error {
	if c.TabWidth < 1 || c.TabWidth > 16 {
		return fmt.Errorf("tab_width %d: %w", c.TabWidth, ErrInvalid)
	}
	if _, ok := viewport.ParseWrapMode(c.Wrap); !ok {
		return fmt.Errorf("wrap %q: %w", c.Wrap, ErrInvalid)
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("history_limit %d: %w", c.HistoryLimit, ErrInvalid)
	}
	if c.DoubleClickMS < 1 {
		return fmt.Errorf("double_click_ms %d: %w", c.DoubleClickMS, ErrInvalid)
	}
	if c.FinderDepth < 1 {
		return fmt.Errorf("finder_depth %d: %w", c.FinderDepth, ErrInvalid)
	}
	if _, ok := BuiltinThemes[c.Theme.Name]; !ok {
		return fmt.Errorf("theme %q: %w", c.Theme.Name, ErrInvalid)
	}
	for role := range c.Theme.Colors {
		if _, ok := themeRoles[role]; !ok {
			return fmt.Errorf("theme color %q: %w", role, ErrInvalid)
		}
	}
	_, err := c.Keys()
	return err
}

// Keys returns the default keymap with the configured overrides applied.
func (c *Config) Keys() (*keymap.Keymap, error) {
	km := keymap.Default()
	overrides := make(map[string][]string, len(c.Keymap))
	for action, chords := range c.Keymap {
		overrides[action] = chords
	}
	if err := km.Apply(overrides); err != nil {
		return nil, fmt.Errorf("keymap: %w: %w", ErrInvalid, err)
	}
	return km, nil
}

// WrapMode is the parsed wrap setting.
func (c *Config) WrapMode() viewport.WrapMode {
	m, _ := viewport.ParseWrapMode(c.Wrap)
	return m
}

// DoubleClick is the multi-click window.
func (c *Config) DoubleClick() time.Duration {
	return time.Duration(c.DoubleClickMS) * time.Millisecond
}
