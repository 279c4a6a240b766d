package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"STORE_DRIVER", "POSTGRES_DSN", "ADMIN_USERNAME", "ADMIN_PASSWORD", "CORS_ORIGINS", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "admin123", cfg.Admin.Password)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.CORS.AllowsAnyOrigin())
	assert.False(t, cfg.Notification.Enabled())
	assert.Equal(t, 5*time.Second, cfg.Notification.Timeout())
	assert.Equal(t, 3*time.Second, cfg.Geo.Timeout())
}

func TestLoadPicksPostgresWhenDSNPresent(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/leads")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_DB", "zero")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadParsesOriginsAndTelegram(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("CORS_ORIGINS", "https://orbita.dev, https://admin.orbita.dev ,")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://orbita.dev", "https://admin.orbita.dev"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.CORS.AllowsAnyOrigin())
	assert.True(t, cfg.Notification.Enabled())
}
