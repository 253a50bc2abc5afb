package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validDevConfig() *Config {
	return &Config{
		JWTSecret:  "your-secret-key-change-in-production",
		Port:       "8480",
		DBPassword: "password",
		DBSSLMode:  "disable",
		Env:        "development",
	}
}

func TestValidateDevelopmentDefaults(t *testing.T) {
	assert.NoError(t, validDevConfig().Validate())
}

func TestValidateRequiredFields(t *testing.T) {
	cfg := validDevConfig()
	cfg.Port = ""
	assert.Error(t, cfg.Validate())

	cfg = validDevConfig()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateProduction(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		expectErr string
	}{
		{
			name:      "Default JWT secret rejected",
			mutate:    func(c *Config) {},
			expectErr: "JWT_SECRET must be changed",
		},
		{
			name: "Short JWT secret rejected",
			mutate: func(c *Config) {
				c.JWTSecret = "short"
			},
			expectErr: "at least 32 characters",
		},
		{
			name: "Default DB password rejected",
			mutate: func(c *Config) {
				c.JWTSecret = strings.Repeat("s", 32)
			},
			expectErr: "DB_PASSWORD",
		},
		{
			name: "Strong values accepted",
			mutate: func(c *Config) {
				c.JWTSecret = strings.Repeat("s", 32)
				c.DBPassword = "an-actual-password"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDevConfig()
			cfg.Env = "production"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectErr == "" {
				assert.NoError(t, err)
			} else if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.expectErr)
			}
		})
	}
}
