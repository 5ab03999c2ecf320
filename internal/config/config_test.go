package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, []string{"console"}, cfg.Logging.Sinks)
	assert.Zero(t, cfg.Timers.CountdownSeconds)
}

func TestLoadExplicitPath(t *testing.T) {
	path := writeConfig(t, `
addr: ":9000"
seed: 1234
logging:
  sinks: [console, json]
  json_path: /tmp/events.ndjson
timers:
  countdown_seconds: 5
  teardown_seconds: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, int64(1234), cfg.Seed)
	assert.Equal(t, []string{"console", "json"}, cfg.Logging.Sinks)
	assert.Equal(t, "/tmp/events.ndjson", cfg.Logging.JSONPath)
	assert.Equal(t, 5, cfg.Timers.CountdownSeconds)
	assert.Equal(t, 2, cfg.Timers.TeardownSeconds)
}

func TestLoadMissingExplicitPathFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := writeConfig(t, "seed: 99\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, []string{"console"}, cfg.Logging.Sinks)
	assert.Equal(t, int64(99), cfg.Seed)
}

func TestLoadRejectsUnknownSink(t *testing.T) {
	path := writeConfig(t, "logging:\n  sinks: [syslog]\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown logging sink")
}

func TestLoadRejectsNegativeTimers(t *testing.T) {
	path := writeConfig(t, "timers:\n  countdown_seconds: -1\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "addr: [unclosed\n")

	_, err := Load(path)
	require.Error(t, err)
}
