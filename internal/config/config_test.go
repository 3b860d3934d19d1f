package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, dataDir string) (Config, error) {
	t.Helper()
	v := viper.New()
	SetDefaults(v, dataDir)
	return FromViper(v)
}

func TestDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := load(t, dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "prompter.sqlite"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "media"), cfg.MediaDir)
	assert.Equal(t, filepath.Join(dir, "prompter.log"), cfg.Log.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, 2.0, cfg.Teleprompter.ScrollSpeed)
	assert.Equal(t, 24, cfg.Teleprompter.FontSize)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PROMPTER_TELEPROMPTER_SCROLL_SPEED", "3.5")
	t.Setenv("PROMPTER_TELEPROMPTER_FONT_SIZE", "30")
	t.Setenv("PROMPTER_LOG_LEVEL", "DEBUG")
	t.Setenv("PROMPTER_DB_PATH", "/tmp/elsewhere.sqlite")

	cfg, err := load(t, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 3.5, cfg.Teleprompter.ScrollSpeed)
	assert.Equal(t, 30, cfg.Teleprompter.FontSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/elsewhere.sqlite", cfg.DBPath)
}

func TestDataDirMovesDerivedPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROMPTER_DATA_DIR", dir)

	cfg, err := load(t, "/unused")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "prompter.sqlite"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "media"), cfg.MediaDir)
}

func TestRejectsOutOfRangeTeleprompter(t *testing.T) {
	t.Setenv("PROMPTER_TELEPROMPTER_SCROLL_SPEED", "9")
	_, err := load(t, t.TempDir())
	assert.Error(t, err)
}

func TestRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("PROMPTER_LOG_LEVEL", "chatty")
	_, err := load(t, t.TempDir())
	assert.Error(t, err)
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := "data_dir: " + dir + "\nteleprompter:\n  font_size: 36\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("PROMPTER_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 36, cfg.Teleprompter.FontSize)
	assert.Equal(t, dir, cfg.DataDir)
}

func TestLoadMissingExplicitConfigFile(t *testing.T) {
	t.Setenv("PROMPTER_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml")
}

func TestOptionalConfigFileMayBeAbsent(t *testing.T) {
	v := viper.New()
	SetDefaults(v, t.TempDir())

	require.NoError(t, readConfigFile(v, ""))
	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.Teleprompter.FontSize)
}
