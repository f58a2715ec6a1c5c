package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TokenExpiry)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 12, cfg.Security.BcryptCost)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_TOKEN_EXPIRE", "2h")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "45s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 2*time.Hour, cfg.JWT.TokenExpiry)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSAllowedOrigins)
}

func TestLoadRejectsShortJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRequiredFields(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.JWT.Secret = "test-secret-key-that-is-long-enough-123"
		cfg.Database.Host = "localhost"
		cfg.Database.Name = "fertishop_db"
		cfg.Database.User = "fertishop_user"
		cfg.Redis.Host = "localhost"
		cfg.Server.Port = "8080"
		return cfg
	}

	require.NoError(t, base().Validate())

	missingDB := base()
	missingDB.Database.Host = ""
	assert.Error(t, missingDB.Validate())

	missingRedis := base()
	missingRedis.Redis.Host = ""
	assert.Error(t, missingRedis.Validate())

	missingPort := base()
	missingPort.Server.Port = ""
	assert.Error(t, missingPort.Validate())
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{}
	cfg.Database = DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "shop",
		Password: "pw",
		Name:     "shopdb",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=shop password=pw dbname=shopdb sslmode=require",
		cfg.GetDatabaseDSN())
}

func TestGetRedisAddr(t *testing.T) {
	cfg := &Config{}
	cfg.Redis.Host = "cache.internal"
	cfg.Redis.Port = "6380"

	assert.Equal(t, "cache.internal:6380", cfg.GetRedisAddr())
}
