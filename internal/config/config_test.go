package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	require.NoError(t, m.Load())
	require.FileExists(t, filepath.Join(dir, "config.toml"))

	cfg := m.Get()
	require.True(t, cfg.UI.Autosave)
	require.Equal(t, 2*time.Second, cfg.AutosaveDelay())
	require.Equal(t, "harbor", cfg.UI.Theme)
}

func TestLoadParsesExistingFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[server]
base_url = "https://trace.example"
token = "tok-123"

[ui]
theme = "slate"
autosave = false
autosave_delay_ms = 500
poll_interval_s = 30

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	m := NewManager(dir)
	require.NoError(t, m.Load())

	cfg := m.Get()
	require.Equal(t, "https://trace.example", cfg.Server.BaseURL)
	require.Equal(t, "tok-123", cfg.Server.Token)
	require.Equal(t, "slate", cfg.UI.Theme)
	require.False(t, cfg.UI.Autosave)
	require.Equal(t, 500*time.Millisecond, cfg.AutosaveDelay())
	require.Equal(t, 30*time.Second, cfg.PollInterval())
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvVarsExpandOnLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRACE_AID_TEST_TOKEN", "from-env")
	content := `
[server]
base_url = "http://localhost:8787"
token = "${TRACE_AID_TEST_TOKEN}"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	m := NewManager(dir)
	require.NoError(t, m.Load())
	require.Equal(t, "from-env", m.Get().Server.Token)
}

func TestUnsetEnvVarLeftVerbatim(t *testing.T) {
	dir := t.TempDir()
	content := `
[server]
token = "${TRACE_AID_DEFINITELY_UNSET}"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	m := NewManager(dir)
	require.NoError(t, m.Load())
	require.Equal(t, "${TRACE_AID_DEFINITELY_UNSET}", m.Get().Server.Token)
}

func TestSetPersists(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)
	require.NoError(t, m.Load())

	require.NoError(t, m.Set("ui.theme", "slate"))
	require.NoError(t, m.Set("ui.autosave", "false"))
	require.NoError(t, m.Set("ui.autosave_delay_ms", "750"))

	reloaded := NewManager(dir)
	require.NoError(t, reloaded.Load())
	require.Equal(t, "slate", reloaded.Get().UI.Theme)
	require.False(t, reloaded.Get().UI.Autosave)
	require.Equal(t, 750*time.Millisecond, reloaded.Get().AutosaveDelay())
}

func TestSetRejectsBadInput(t *testing.T) {
	m := NewManager(t.TempDir())
	require.NoError(t, m.Load())

	require.Error(t, m.Set("nope", "x"))
	require.Error(t, m.Set("ui.autosave_delay_ms", "soon"))
}

func TestPathHelpers(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)
	require.NoError(t, m.Load())

	require.Equal(t, filepath.Join(dir, "state"), m.StateDir())
	require.Equal(t, filepath.Join(dir, "trace-aid.log"), m.LogFile())

	require.NoError(t, m.Set("log.file", "/tmp/custom.log"))
	require.Equal(t, "/tmp/custom.log", m.LogFile())
}

func TestDurationFallbacks(t *testing.T) {
	cfg := &Config{}
	require.Equal(t, 2*time.Second, cfg.AutosaveDelay())
	require.Equal(t, 60*time.Second, cfg.PollInterval())
}
