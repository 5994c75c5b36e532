package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[development]
host = "localhost"
port = 9000
log_level = "trace"
postgres_host = "localhost"
postgres_port = "5432"
postgres_db_name = "workouts"
postgres_user = "postgres"
redis_host = "localhost"
redis_port = "6379"
projection_cache_ttl = "5m"
session_ttl = "168h"
writes_per_minute = 30
allowed_origins = ["http://localhost:5173"]

[production]
host = "0.0.0.0"
port = 9000
log_level = "info"
postgres_host = "postgres"
postgres_db_name = "workouts"
redis_host = "redis"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, testConfig)

	cfg, err := Load("dev", path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.ProjectionCacheTTL.Duration)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL.Duration)
	assert.Equal(t, 30, cfg.WritesPerMinute)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)

	cfg, err = Load("Production", path)
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.RedisHost)
	assert.Zero(t, cfg.SessionTTL.Duration)

	_, err = Load("staging", path)
	assert.EqualError(t, err, "unknown env: staging")
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load("dev", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load("dev", writeConfig(t, "[development]\nport = 9000\nunknown_key = 1\n"))
	assert.ErrorContains(t, err, "unknown config keys")

	_, err = Load("dev", writeConfig(t, "[development]\nport = 9000\n"))
	assert.ErrorContains(t, err, "postgres host and db name required")

	_, err = Load("prod", writeConfig(t, "[development]\nport = 9000\n"))
	assert.ErrorContains(t, err, "no config section")

	_, err = Load("dev", writeConfig(t, "[development]\nsession_ttl = \"forever\"\n"))
	assert.Error(t, err)
}
