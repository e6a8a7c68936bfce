package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":3000", cfg.EndpointAddr)
	assert.Equal(t, "proyection", cfg.MongoDatabase)
	assert.Equal(t, "proyection-api", cfg.JWTIssuer)
	assert.Equal(t, "proyection-client", cfg.JWTAudience)
	assert.Equal(t, 20*time.Minute, cfg.AccessTokenValidity)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenValidity)
	assert.Equal(t, 60*time.Second, cfg.ClockTolerance)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Empty(t, cfg.JWTSecret)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.LoadDefaults()
		cfg.JWTSecret = strings.Repeat("k", 48)
		return cfg
	}

	t.Run("valid config passes", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("missing secret rejected", func(t *testing.T) {
		cfg := valid()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("short secret rejected", func(t *testing.T) {
		cfg := valid()
		cfg.JWTSecret = "too-short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("placeholder secret rejected", func(t *testing.T) {
		cfg := valid()
		cfg.JWTSecret = "please-changeme-please-changeme-now"
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive validity rejected", func(t *testing.T) {
		cfg := valid()
		cfg.AccessTokenValidity = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestParseEnv(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	t.Setenv("ADDRESS", ":8081")
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv("JWT_ACCESS_VALIDITY", "15m")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("APP_ENV", "production")

	parseEnv(cfg)

	assert.Equal(t, ":8081", cfg.EndpointAddr)
	assert.Equal(t, strings.Repeat("s", 32), cfg.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidity)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.Production)
}
