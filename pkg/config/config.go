// Package config loads toolkit configuration: process toggles from the
// environment and an optional YAML theme file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Environment variables read by [FromEnv].
const (
	EnvHighDPI       = "WIDGETKIT_HIGHDPI"
	EnvReportClasses = "WIDGETKIT_REPORT_CLASSES"
	EnvReportRender  = "WIDGETKIT_REPORT_RENDER"
	EnvReportEvents  = "WIDGETKIT_REPORT_EVENTS"
)

const (
	// DefaultScale is the high-DPI scale factor when none is configured.
	DefaultScale = 1.0
	// MinScale is the floor applied to configured scale factors.
	MinScale = 0.5
	// SupportedMajor is the theme file major version this build reads.
	SupportedMajor = "v1"
)

// ErrUnsupportedVersion is returned for theme files declaring a version
// this build cannot read.
var ErrUnsupportedVersion = errors.New("config: unsupported theme version")

// Config is the resolved toolkit configuration.
type Config struct {
	// Version is the theme file format version (semver, e.g. "v1.0.0").
	Version string `yaml:"version"`
	// Scale is the high-DPI scale factor.
	Scale float64 `yaml:"scale"`
	// Reports enables diagnostic logging.
	Reports Reports `yaml:"reports"`
	// Theme holds per-class style and font defaults.
	Theme Theme `yaml:"theme"`
}

// Reports selects diagnostic debug logging.
type Reports struct {
	Classes bool `yaml:"classes"`
	Render  bool `yaml:"render"`
	Events  bool `yaml:"events"`
}

// Theme maps a widget class name (e.g. "button") to its defaults.
type Theme map[string]ClassTheme

// ClassTheme holds the defaults applied to new widgets of one class.
type ClassTheme struct {
	Normal   *StyleConfig `yaml:"normal,omitempty"`
	Selected *StyleConfig `yaml:"selected,omitempty"`
	Hovered  *StyleConfig `yaml:"hovered,omitempty"`
	// Settings are applied with the widget's Name=Value surface,
	// e.g. ["FontSize=14", "FontBold"].
	Settings []string `yaml:"settings,omitempty"`
}

// StyleConfig is the file form of a background style. Exactly one of
// Color, Gradient or Transparent should be set.
type StyleConfig struct {
	Color       string          `yaml:"color,omitempty"`
	Transparent bool            `yaml:"transparent,omitempty"`
	Gradient    *GradientConfig `yaml:"gradient,omitempty"`
}

// GradientConfig is the file form of a linear gradient.
type GradientConfig struct {
	// Direction is "vertical" (top to bottom) or "horizontal".
	Direction string       `yaml:"direction"`
	Stops     []StopConfig `yaml:"stops"`
}

// StopConfig is one gradient color stop.
type StopConfig struct {
	Color string  `yaml:"color"`
	At    float64 `yaml:"at"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{Version: SupportedMajor + ".0.0", Scale: DefaultScale}
}

// Parse decodes a YAML theme file. Missing fields keep their defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse theme: %w", err)
	}
	if err := checkVersion(cfg.Version); err != nil {
		return nil, err
	}
	cfg.Scale = ClampScale(cfg.Scale)
	return cfg, nil
}

// Load reads a YAML theme file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme: %w", err)
	}
	return Parse(data)
}

// LoadOptional reads path if it is non-empty and exists, and returns the
// defaults otherwise.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
	}
	if semver.Major(v) != SupportedMajor {
		return fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedVersion, v, SupportedMajor)
	}
	return nil
}

// FromEnv overlays environment toggles on cfg. lookup is typically
// os.LookupEnv; it is a parameter so tests need not touch the process
// environment. Malformed values are ignored and returned as warnings.
func (cfg *Config) FromEnv(lookup func(string) (string, bool)) []error {
	var warnings []error
	if v, ok := lookup(EnvHighDPI); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("%s=%q: %w", EnvHighDPI, v, err))
		} else {
			cfg.Scale = ClampScale(f)
		}
	}
	flags := []struct {
		name string
		dst  *bool
	}{
		{EnvReportClasses, &cfg.Reports.Classes},
		{EnvReportRender, &cfg.Reports.Render},
		{EnvReportEvents, &cfg.Reports.Events},
	}
	for _, f := range flags {
		v, ok := lookup(f.name)
		if !ok {
			continue
		}
		b, err := parseBool(v)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("%s=%q: %w", f.name, v, err))
			continue
		}
		*f.dst = b
	}
	return warnings
}

// ClampScale applies the scale floor. Zero means unset and yields the
// default.
func ClampScale(s float64) float64 {
	if s == 0 {
		return DefaultScale
	}
	if s < MinScale {
		return MinScale
	}
	return s
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean")
}
