package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "fcc-forum-pageviews.csv", c.DataFile)
	assert.Equal(t, ".", c.OutputDir)
	assert.Equal(t, 0.025, c.LowerQuantile)
	assert.Equal(t, 0.975, c.UpperQuantile)
	assert.Equal(t, "date", c.DateColumn)
	assert.Equal(t, "value", c.ValueColumn)
	assert.Equal(t, 1, c.SheetIndex)
	assert.Equal(t, 1500, c.LineWidth)
	assert.Equal(t, 800, c.BoxHeight)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PAGEVIEWS_OUTPUT_DIR", "/tmp/charts")
	t.Setenv("PAGEVIEWS_LOWER_QUANTILE", "0.05")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/charts", c.OutputDir)
	assert.Equal(t, 0.05, c.LowerQuantile)
}

func TestSaveThenLoadFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")

	c, err := Load("")
	require.NoError(t, err)
	c.OutputDir = "out"
	c.ValueColumn = "views"
	require.NoError(t, Save(c, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", got.OutputDir)
	assert.Equal(t, "views", got.ValueColumn)
}

func TestSaveDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := Load("")
	require.NoError(t, err)
	c.LogFormat = "json"
	require.NoError(t, Save(c, ""))

	_, err = os.Stat(filepath.Join(home, ".pageviews", "config.yaml"))
	require.NoError(t, err)

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", got.LogFormat)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
