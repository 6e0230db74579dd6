package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	chdirTemp(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "daybook.db", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 2, cfg.Reminders.CloseThreshold)
	assert.Equal(t, 5, cfg.Reminders.PreviewCount)
	assert.Equal(t, time.Minute, cfg.Dashboard.Refresh)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestEnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DAYBOOK_DB_PATH", "state/custom.db")
	t.Setenv("DAYBOOK_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("DAYBOOK_LOG_LEVEL", "debug")
	t.Setenv("DAYBOOK_REMINDERS_CLOSE_THRESHOLD", "4")
	t.Setenv("DAYBOOK_DASHBOARD_REFRESH", "30s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "state/custom.db", cfg.DBPath)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Reminders.CloseThreshold)
	assert.Equal(t, 30*time.Second, cfg.Dashboard.Refresh)
}

func TestFileThenEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "daybook.yaml")
	body := "db_path: from-file.db\nreminders:\n  close_threshold: 7\nlog:\n  format: console\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("DAYBOOK_REMINDERS_CLOSE_THRESHOLD", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file.db", cfg.DBPath)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 3, cfg.Reminders.CloseThreshold)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Reminders.CloseThreshold = -1
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Log.Format = "xml"
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.DBPath = " "
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Reminders.PreviewCount = 367
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Dashboard.Refresh = time.Millisecond
	require.Error(t, cfg.Validate())

	require.NoError(t, Default().Validate())
}

// chdirTemp mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirTemp(t *testing.T) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
