package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.App.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTPAddr())
	assert.Equal(t, "/users", cfg.Auth.BasePath)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, SessionDriverRedis, cfg.Session.Driver)
	assert.Equal(t, time.Hour, cfg.SessionTTL())
	assert.False(t, cfg.RabbitMQ.Enabled)
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	path := writeConfigFile(t, `
[app]
port = 4000

[auth]
base_path = ""
block_authenticated = true

[session]
driver = "memory"
secret = "from-file"
ttl_minutes = 5

[mysql]
db = "authdb"
student_db = "school"
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SESSION_SECRET", "from-env")
	t.Setenv("APP_PORT", "5000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.App.Port)
	assert.Equal(t, "", cfg.Auth.BasePath)
	assert.True(t, cfg.Auth.BlockAuthenticated)
	assert.Equal(t, SessionDriverMemory, cfg.Session.Driver)
	assert.Equal(t, "from-env", cfg.Session.Secret)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL())
	assert.Contains(t, cfg.MySQLDSN(), "/authdb?")
	assert.Contains(t, cfg.StudentDSN(), "/school?")
}

func TestLoad_InvalidFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeConfigFile(t, "[app\nport = "))

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown driver", env: map[string]string{"SESSION_DRIVER": "cookie"}},
		{name: "empty secret", env: map[string]string{"SESSION_SECRET": ""}},
		{name: "zero ttl", env: map[string]string{"SESSION_TTL_MINUTES": "0"}},
		{name: "trailing slash", env: map[string]string{"AUTH_BASE_PATH": "/users/"}},
		{name: "relative base", env: map[string]string{"AUTH_BASE_PATH": "users"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestGetEnvAsBool_FallbackOnGarbage(t *testing.T) {
	t.Setenv("SOME_FLAG", "maybe")
	assert.True(t, getEnvAsBool("SOME_FLAG", true))

	t.Setenv("SOME_FLAG", "false")
	assert.False(t, getEnvAsBool("SOME_FLAG", true))
}
