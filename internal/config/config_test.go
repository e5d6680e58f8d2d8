package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, "0.0.0.0:8888", cfg.Addr())
	assert.Equal(t, "sqlite://taskboard.db", cfg.Database.URL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskboard.yaml")
	yaml := `
mode: debug
server:
  port: 9000
database:
  url: postgres://localhost/taskboard
log:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("PORT", "9100")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("DB_LOG_SQL", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Mode)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/taskboard", cfg.Database.URL)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Database.LogSQL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	chdir(t, t.TempDir())

	t.Setenv("PORT", "not-a-port")
	_, err = Load("")
	assert.Error(t, err)

	t.Setenv("PORT", "70000")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidateMode(t *testing.T) {
	cfg := Default()
	cfg.Mode = "staging"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.CORS.AllowedOrigins = nil
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
