package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, StorageFile, cfg.Storage.Driver)
	assert.Equal(t, "uks_session", cfg.Session.CookieName)
	assert.Equal(t, 50, cfg.Notifications.FeedSize)
}

func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("REDIS_KEY_PREFIX", "test:")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("NOTIFICATION_FEED_SIZE", "-1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageRedis, cfg.Storage.Driver)
	assert.Equal(t, "test:", cfg.Redis.KeyPrefix)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 50, cfg.Notifications.FeedSize)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	chdirTemp(t)
	t.Setenv("STORAGE_DRIVER", "floppy")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadProductionRequiresSecret(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ENV", EnvProduction)

	_, err := Load()
	require.Error(t, err)

	t.Setenv("SESSION_SECRET", "   ")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("SESSION_SECRET", "s3cr3t-from-vault")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t-from-vault", cfg.Session.Secret)
}

func TestLoadDevelopmentKeepsDefaultSecret(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, defaultSessionSecret, cfg.Session.Secret)
}

func chdirTemp(t *testing.T) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(orig) }) //nolint:errcheck
}
