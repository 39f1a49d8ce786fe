package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{input: "debug", want: LevelDebug},
		{input: "info", want: LevelInfo},
		{input: "warn", want: LevelWarn},
		{input: "warning", want: LevelWarn},
		{input: "error", want: LevelError},
		{input: "DEBUG", want: LevelDebug},
		{input: "Info", want: LevelInfo},
		{input: "verbose", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "debug", LevelDebug.String())
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "warn", LevelWarn.String())
	assert.Equal(t, "error", LevelError.String())
	assert.Equal(t, "unknown", Level(42).String())
}

func TestGetReturnsSameLogger(t *testing.T) {
	a := Get("same-component")
	b := Get("same-component")
	assert.Same(t, a, b)
}

func TestLoggerSilentBeforeInit(t *testing.T) {
	// Must not panic or write anywhere.
	l := Get("uninitialized-component")
	l.Debug("quiet")
	l.Info("quiet")
	l.Warn("quiet")
	l.Error("quiet")
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "test.log")

	require.NoError(t, Init(Config{Level: "debug", Path: path}))
	t.Cleanup(func() { _ = Close() })

	logger := Get("init-test")
	logger.Info("file sink works", "key", "value")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "file sink works")
	assert.Contains(t, out, "init-test")
	assert.Contains(t, out, "value")
}

func TestInitLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	require.NoError(t, Init(Config{Level: "warn", Path: path}))
	t.Cleanup(func() { _ = Close() })

	logger := Get("filter-test")
	logger.Info("should be filtered")
	logger.Warn("should appear")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "should be filtered")
	assert.Contains(t, string(data), "should appear")
}

func TestInitComponentOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	require.NoError(t, Init(Config{
		Level:      "error",
		Path:       path,
		Components: map[string]string{"chatty": "debug"},
	}))
	t.Cleanup(func() { _ = Close() })

	Get("chatty").Debug("override lets this through")
	Get("quiet-comp").Info("default filters this out")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "override lets this through")
	assert.NotContains(t, string(data), "default filters this out")
}

func TestInitRejectsInvalidLevel(t *testing.T) {
	assert.Error(t, Init(Config{Level: "loud"}))
	assert.Error(t, Init(Config{
		Level:      "info",
		Components: map[string]string{"x": "shout"},
	}))
}

func TestInitUpdatesExistingLoggers(t *testing.T) {
	// Handed out before Init, silent at that point.
	logger := Get("late-binding")

	path := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, Init(Config{Level: "info", Path: path}))
	t.Cleanup(func() { _ = Close() })

	logger.Info("now it writes")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "now it writes")
}

func TestWithAddsContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, Init(Config{Level: "info", Path: path}))
	t.Cleanup(func() { _ = Close() })

	Get("with-test").With("run", "abc123").Info("contextual")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "abc123")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Info("nowhere")
	l.Error("nowhere")
}

func TestDefaultLogPath(t *testing.T) {
	p := DefaultLogPath()
	assert.Contains(t, p, "tidy")
	assert.Equal(t, "tidy.log", filepath.Base(p))
}
