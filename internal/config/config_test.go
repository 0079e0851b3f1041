package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name:   "Development Defaults Pass",
			config: Config{Env: "development", Port: "8460", JWTSecret: "your-secret-key-change-in-production"},
		},
		{
			name:        "Missing Port",
			config:      Config{Env: "development", JWTSecret: "secret"},
			expectError: true,
		},
		{
			name:        "Missing JWT Secret",
			config:      Config{Env: "development", Port: "8460"},
			expectError: true,
		},
		{
			name:        "Production Rejects Default Secret",
			config:      Config{Env: "production", Port: "8460", JWTSecret: "your-secret-key-change-in-production", DBPassword: "strongpass"},
			expectError: true,
		},
		{
			name:        "Production Rejects Short Secret",
			config:      Config{Env: "production", Port: "8460", JWTSecret: "short", DBPassword: "strongpass"},
			expectError: true,
		},
		{
			name:        "Production Rejects Default DB Password",
			config:      Config{Env: "production", Port: "8460", JWTSecret: "secure-secret-at-least-32-chars-long", DBPassword: "password"},
			expectError: true,
		},
		{
			name:   "Production With Strong Credentials",
			config: Config{Env: "production", Port: "8460", JWTSecret: "secure-secret-at-least-32-chars-long", DBPassword: "strongpass", DBSSLMode: "require"},
		},
		{
			name:        "Prod Alias Enforced Too",
			config:      Config{Env: "prod", Port: "8460", JWTSecret: "short", DBPassword: "strongpass"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
