package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("MORTGAGE_PORT", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MORTGAGE_PORT", "")
	t.Setenv("MORTGAGE_LOG_LEVEL", "")
	t.Setenv("REDIS_ADDR", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = 9090

[logging]
level = "debug"

[rate_limit]
requests = 20
window = "30s"

[cache]
driver = "redis"
redis_addr = "cache:6379"
ttl = "10m"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 20, cfg.RateLimit.Requests)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "cache:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, "15s", cfg.Server.ReadTimeout)
}

func TestLoad_InvalidFile(t *testing.T) {
	chdir(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\nport = "), 0o600))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MORTGAGE_PORT", "7070")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("DATABASE_DSN", "host=db user=app")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "redis:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "host=db user=app", cfg.Storage.DSN)
	assert.Equal(t, "sk-test", cfg.Advisor.APIKey)
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 30*time.Second, Duration("30s", time.Minute))
	assert.Equal(t, time.Minute, Duration("", time.Minute))
	assert.Equal(t, time.Minute, Duration("soon", time.Minute))
	assert.Equal(t, time.Minute, Duration("-5s", time.Minute))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir for Go < 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}
