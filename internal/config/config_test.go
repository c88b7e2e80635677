package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/users")
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("HOST", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	require.False(t, cfg.Server.Debug)
	require.Equal(t, 12, cfg.Security.BcryptCost)
	require.Positive(t, cfg.Security.WorkerCount)
	require.Empty(t, cfg.Redis.Addr)
	require.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "5000")
	t.Setenv("DEBUG", "true")
	t.Setenv("BCRYPT_COST", "13")
	t.Setenv("WORKER_COUNT", "2")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:5000", cfg.Server.Addr())
	require.True(t, cfg.Server.Debug)
	require.Equal(t, 13, cfg.Security.BcryptCost)
	require.Equal(t, 2, cfg.Security.WorkerCount)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	require.Equal(t, 3, cfg.Redis.DB)
	require.Equal(t, 30*time.Second, cfg.Redis.TTL)
	require.Equal(t, "console", cfg.Log.Format)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("DATABASE_URL", "db")
	t.Setenv("BCRYPT_COST", "4")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("WORKER_COUNT", "0")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("WORKER_COUNT", "1")
	t.Setenv("LOG_FORMAT", "xml")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))
	_, err = Load()
	require.Error(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	p := filepath.Join(t.TempDir(), "service.env")
	require.NoError(t, os.WriteFile(p, []byte("DATABASE_URL=postgres://file/users\nPORT=9090\n"), 0o600))
	t.Setenv("CONFIG_FILE", p)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres://file/users", cfg.Database.URL)
	require.Equal(t, "9090", cfg.Server.Port)
}
