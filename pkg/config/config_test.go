package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const themeYAML = `
version: v1.2.0
scale: 2
reports:
  render: true
theme:
  button:
    normal:
      gradient:
        direction: vertical
        stops:
          - {color: "#ffffff", at: 0}
          - {color: "#c0c0c0", at: 1}
    selected:
      color: "80,80,200,255"
    settings: ["FontSize=14", "FontBold"]
  label:
    normal:
      transparent: true
`

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestParseTheme(t *testing.T) {
	cfg, err := Parse([]byte(themeYAML))
	require.NoError(t, err)

	assert.Equal(t, 2.0, cfg.Scale)
	assert.True(t, cfg.Reports.Render)
	assert.False(t, cfg.Reports.Classes)

	button := cfg.Theme["button"]
	require.NotNil(t, button.Normal)
	require.NotNil(t, button.Normal.Gradient)
	assert.Equal(t, "vertical", button.Normal.Gradient.Direction)
	assert.Len(t, button.Normal.Gradient.Stops, 2)
	assert.Equal(t, "80,80,200,255", button.Selected.Color)
	assert.Equal(t, []string{"FontSize=14", "FontBold"}, button.Settings)
	assert.True(t, cfg.Theme["label"].Normal.Transparent)
}

func TestParseVersionCheck(t *testing.T) {
	_, err := Parse([]byte("version: v2.0.0\n"))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Parse([]byte("version: banana\n"))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	cfg, err := Parse([]byte("version: 1.4.2\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultScale, cfg.Scale)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("scale: [1, 2"))
	assert.Error(t, err)
}

func TestParseClampsScale(t *testing.T) {
	cfg, err := Parse([]byte("scale: 0.1\n"))
	require.NoError(t, err)
	assert.Equal(t, MinScale, cfg.Scale)
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadOptional(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadOptional("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte(themeYAML), 0o644))
	cfg, err = LoadOptional(path)
	require.NoError(t, err)
	assert.Contains(t, cfg.Theme, "button")
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	warnings := cfg.FromEnv(env(map[string]string{
		EnvHighDPI:       "2.5",
		EnvReportClasses: "1",
		EnvReportEvents:  "off",
	}))
	assert.Empty(t, warnings)
	assert.Equal(t, 2.5, cfg.Scale)
	assert.True(t, cfg.Reports.Classes)
	assert.False(t, cfg.Reports.Events)
	assert.False(t, cfg.Reports.Render)
}

func TestFromEnvFloorAndWarnings(t *testing.T) {
	cfg := Default()
	warnings := cfg.FromEnv(env(map[string]string{
		EnvHighDPI:      "0.2",
		EnvReportRender: "maybe",
	}))
	assert.Equal(t, MinScale, cfg.Scale)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Error(), EnvReportRender)

	cfg = Default()
	warnings = cfg.FromEnv(env(map[string]string{EnvHighDPI: "big"}))
	assert.Len(t, warnings, 1)
	assert.Equal(t, DefaultScale, cfg.Scale)
}

func TestClampScale(t *testing.T) {
	assert.Equal(t, DefaultScale, ClampScale(0))
	assert.Equal(t, MinScale, ClampScale(0.3))
	assert.Equal(t, 3.0, ClampScale(3))
}
