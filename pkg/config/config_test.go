package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https://isaac-it.onrender.com/api/v1/sifms", cfg.API.BaseURL)
	assert.Zero(t, cfg.API.Timeout)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, "sifms_session", cfg.Session.CookieName)
	assert.Zero(t, cfg.Session.TTL)
	assert.Equal(t, 5*time.Second, cfg.Session.SignupMessageTTL)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SIFMS_API_BASE_URL", "http://api.local/api/v1/sifms/")
	t.Setenv("SESSION_STORE", " Redis ")
	t.Setenv("SIFMS_API_TIMEOUT", "3s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://api.local/api/v1/sifms", cfg.API.BaseURL)
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoadRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("ENV", EnvProduction)

	_, err := Load()
	assert.ErrorIs(t, err, ErrDefaultSecret)

	t.Setenv("SESSION_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "a-real-secret", cfg.Session.Secret)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 2*time.Second, parseDuration("2s", time.Minute))
}
