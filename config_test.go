package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivemoreminix/pyedit/syntax"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, v, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 4, cfg.IndentUnit)
	assert.Equal(t, 4, cfg.TabSize)
	assert.True(t, cfg.LineNumbers)
	assert.False(t, cfg.HardTabs)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", `
indent_unit: 2
hard_tabs: true
log:
  level: debug
colors:
  function(variableName): "yellow bold"
  keyword: red
`)
	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.IndentUnit)
	assert.Equal(t, 4, cfg.TabSize, "unset keys keep their defaults")
	assert.True(t, cfg.HardTabs)
	assert.Equal(t, "debug", cfg.Log.Level)

	colorscheme, err := cfg.Colorscheme()
	require.NoError(t, err)
	fg, _, attrs := colorscheme.GetStyle(syntax.VariableName.Tag().Function()).Decompose()
	assert.Equal(t, tcell.ColorYellow, fg)
	assert.NotZero(t, attrs&tcell.AttrBold)
	fg, _, _ = colorscheme.GetStyle(syntax.ControlKeyword.Tag()).Decompose()
	assert.Equal(t, tcell.ColorRed, fg, "keyword kinds fall back to keyword")
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name, yaml, want string
	}{
		{"indent", "indent_unit: 0\n", "indent_unit"},
		{"tabs", "tab_size: 100\n", "tab_size"},
		{"level", "log:\n  level: loud\n", "log.level"},
		{"tag", "colors:\n  sparkle: red\n", "unknown tag"},
		{"color", "colors:\n  keyword: notacolor\n", "unknown color"},
		{"yaml", "indent_unit: [\n", "reading config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadConfig(writeFile(t, "config.yaml", tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWriteDefaultConfigRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyedit", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path, false))

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)
	want := DefaultConfig()
	assert.Equal(t, want.IndentUnit, cfg.IndentUnit)
	assert.Equal(t, want.TabSize, cfg.TabSize)
	assert.Equal(t, want.LineNumbers, cfg.LineNumbers)
	assert.Equal(t, want.Log, cfg.Log)

	assert.Error(t, WriteDefaultConfig(path, false))
	assert.NoError(t, WriteDefaultConfig(path, true))
}

func TestSetupLogging(t *testing.T) {
	closeLog, err := setupLogging(LogConfig{Level: "warn"})
	require.NoError(t, err)
	require.NoError(t, closeLog())

	path := filepath.Join(t.TempDir(), "pyedit.log")
	closeLog, err = setupLogging(LogConfig{File: path, Level: "debug"})
	require.NoError(t, err)
	require.NoError(t, closeLog())
	_, err = os.Stat(path)
	assert.NoError(t, err)

	_, err = setupLogging(LogConfig{Level: "nope"})
	assert.Error(t, err)
}
