package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProductionConfig() *Config {
	return &Config{
		JWTSecret:     strings.Repeat("s", 32),
		Port:          "8420",
		DBPassword:    "a-strong-password",
		DBSSLMode:     "require",
		AllowedOrigin: "https://forgehub.dev",
		Env:           "production",
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid production config", func(t *testing.T) {
		assert.NoError(t, validProductionConfig().Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := validProductionConfig()
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing secret", func(t *testing.T) {
		cfg := validProductionConfig()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("default secret rejected in production", func(t *testing.T) {
		cfg := validProductionConfig()
		cfg.JWTSecret = "your-secret-key-change-in-production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("short secret rejected in production", func(t *testing.T) {
		cfg := validProductionConfig()
		cfg.JWTSecret = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("weak db password rejected in production", func(t *testing.T) {
		cfg := validProductionConfig()
		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate())
	})

	t.Run("wildcard origin rejected in production", func(t *testing.T) {
		cfg := validProductionConfig()
		cfg.AllowedOrigin = "*"
		assert.Error(t, cfg.Validate())
	})

	t.Run("lenient in development", func(t *testing.T) {
		cfg := &Config{
			JWTSecret: "short-dev-secret",
			Port:      "8420",
			Env:       "development",
		}
		assert.NoError(t, cfg.Validate())
	})
}
