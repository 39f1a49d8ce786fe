package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.DefaultPath)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, DefaultRetentionDays, cfg.History.RetentionDays)
	assert.NotEmpty(t, cfg.History.Path)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultWatchSettle, cfg.Watch.Settle)
}

func TestLoadFromFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("HOME", t.TempDir())

	dir := filepath.Join(configHome, "tidy")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	yaml := `
default_path: ~/Downloads
output: plain
extensions:
  sketch: Images
skip_patterns:
  - "~$*"
history:
  enabled: false
  retention_days: 7
logging:
  level: debug
watch:
  settle: 2s
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "~/Downloads", cfg.DefaultPath)
	assert.Equal(t, "plain", cfg.Output)
	assert.Equal(t, map[string]string{"sketch": "Images"}, cfg.Extensions)
	assert.Equal(t, []string{"~$*"}, cfg.SkipPatterns)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, 7, cfg.History.RetentionDays)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "2s", cfg.Watch.Settle)
}

func TestLoadMalformedFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("HOME", t.TempDir())

	dir := filepath.Join(configHome, "tidy")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("output: [unclosed"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadExpandsHistoryTilde(t *testing.T) {
	configHome := t.TempDir()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("HOME", home)

	dir := filepath.Join(configHome, "tidy")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	yaml := "history:\n  path: ~/state/history\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "state", "history"), cfg.History.Path)
}

func TestConfigDir(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", custom)

	dir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(custom, "tidy"), dir)
}

func TestConfigDirFallsBackToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "tidy"), dir)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/Downloads")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Downloads"), got)

	got, err = ExpandPath("/absolute/path")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path", got)

	got, err = ExpandPath("relative/path")
	require.NoError(t, err)
	assert.Equal(t, "relative/path", got)
}

func TestWriteDefault(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	require.NoError(t, WriteDefault())

	path := filepath.Join(configHome, "tidy", "config.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "output: "+DefaultOutput)
	assert.Contains(t, string(data), "retention_days:")

	// A second call leaves the existing file alone.
	require.NoError(t, os.WriteFile(path, []byte("output: plain\n"), 0o644))
	require.NoError(t, WriteDefault())
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "output: plain\n", string(data))
}
