package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCmd runs pyedit with args against a config file that does not exist, and
// returns what it printed.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestIndentCommand(t *testing.T) {
	path := writeFile(t, "a.py", "def f(x):\n    if x:\n        return 1\n")

	out, err := runCmd(t, "indent", path)
	require.NoError(t, err)
	assert.Equal(t, "8\n", out)

	out, err = runCmd(t, "indent", "--pos", "0", path)
	require.NoError(t, err)
	assert.Equal(t, "none\n", out)

	_, err = runCmd(t, "indent", "--pos", "1000", path)
	assert.ErrorContains(t, err, "past the end")
}

func TestFoldsCommand(t *testing.T) {
	path := writeFile(t, "a.py", "def f():\n    return 1\n\nx = [\n    1,\n]\n")
	out, err := runCmd(t, "folds", path)
	require.NoError(t, err)
	assert.Equal(t, "1:9-2:13\n4:6-6:1\n", out)
}

func TestHighlightCommand(t *testing.T) {
	path := writeFile(t, "a.py", "foo(x)\n")

	out, err := runCmd(t, "highlight", "--tags", path)
	require.NoError(t, err)
	assert.Equal(t, "0-3\tfunction(variableName)\t\"foo\"\n"+
		"3-4\tparen\t\"(\"\n"+
		"4-5\tvariableName\t\"x\"\n"+
		"5-6\tparen\t\")\"\n", out)

	out, err = runCmd(t, "highlight", path)
	require.NoError(t, err)
	assert.Equal(t, "foo(x)\n", out, "without colors the source comes back unchanged")
}

func TestCommandsRejectUnknownLanguages(t *testing.T) {
	path := writeFile(t, "notes.txt", "hello\n")
	_, err := runCmd(t, "folds", path)
	assert.ErrorContains(t, err, "no language")

	_, err = runCmd(t, "folds", filepath.Join(t.TempDir(), "missing.py"))
	assert.ErrorContains(t, err, "reading source")
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path, "config", "init"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), path)

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().IndentUnit, cfg.IndentUnit)

	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path, "config", "init"})
	assert.ErrorContains(t, cmd.Execute(), "already exists")

	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path, "config", "init", "--force"})
	assert.NoError(t, cmd.Execute())
}

func TestConfigInitReplacesBrokenConfig(t *testing.T) {
	path := writeFile(t, "config.yaml", "indent_unit: 0\n")
	_, err := runCmd(t, "--config", path, "folds", writeFile(t, "a.py", "x = 1\n"))
	require.ErrorContains(t, err, "indent_unit")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path, "config", "init"})
	assert.ErrorContains(t, cmd.Execute(), "already exists")

	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path, "config", "init", "--force"})
	require.NoError(t, cmd.Execute())

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().IndentUnit, cfg.IndentUnit)
}
