package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noDotenv(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "vida_ativa")

	cfg, err := Load(noDotenv(t))
	require.NoError(t, err)

	assert.Equal(t, ":8001", cfg.HTTPAddr)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Contains(t, cfg.WhatsAppURL, "chat.whatsapp.com")
}

func TestLoadFromDotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "STORE_DRIVER=postgres\nDATABASE_URL=postgres://u:p@localhost/leads\nCORS_ORIGINS=https://a.com,https://b.com\nSTORE_TIMEOUT=2s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("STORE_DRIVER")
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("CORS_ORIGINS")
		os.Unsetenv("STORE_TIMEOUT")
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "postgres://u:p@localhost/leads", cfg.DatabaseURL)
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, cfg.CORSOrigins)
	assert.Equal(t, 2*time.Second, cfg.StoreTimeout)
}

func TestLoadRequiresDriverSettings(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGO_URL", "")
	t.Setenv("DB_NAME", "")

	_, err := Load(noDotenv(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URL")
	assert.Contains(t, err.Error(), "DB_NAME")
}

func TestValidate(t *testing.T) {
	base := Config{
		StoreDriver:  DriverPostgres,
		DatabaseURL:  "postgres://localhost/leads",
		StoreTimeout: time.Second,
		LogFormat:    "console",
	}
	assert.NoError(t, base.Validate())

	bad := base
	bad.StoreDriver = "sqlite"
	assert.ErrorContains(t, bad.Validate(), "STORE_DRIVER")

	bad = base
	bad.StoreTimeout = 0
	assert.ErrorContains(t, bad.Validate(), "STORE_TIMEOUT")

	bad = base
	bad.LogFormat = "xml"
	assert.ErrorContains(t, bad.Validate(), "LOG_FORMAT")
}
