package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFileThenEnv(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "lum.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  driver: redis
  url: redis://localhost:6379/0
ai:
  model: gemini-test
`), 0o600))
	t.Setenv("LUMINA_STORAGE_PREFIX", "test:")
	t.Setenv("LUMINA_AI_MODEL", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Storage.URL)
	assert.Equal(t, "test:", cfg.Storage.Prefix)
	assert.Equal(t, "from-env", cfg.AI.Model)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadAPIKeyFallback(t *testing.T) {
	isolate(t)
	t.Setenv("API_KEY", "legacy-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "legacy-key", cfg.AI.APIKey)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	home := isolate(t)
	_, err := Load(filepath.Join(home, "nope.yaml"))
	assert.Error(t, err)
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	isolate(t)
	path := DefaultPath()

	require.NoError(t, WriteDefault(path, false))
	assert.Error(t, WriteDefault(path, false))
	require.NoError(t, WriteDefault(path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "driver: sqlite")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LogConfig{Level: "debug", Format: "json"}, &buf)
	log.Debug("hello", "k", 1)
	assert.True(t, strings.HasPrefix(buf.String(), "{"))

	buf.Reset()
	log = NewLogger(LogConfig{Level: "bogus"}, &buf)
	log.Info("hidden")
	assert.Empty(t, buf.String())
	log.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}
