package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTokenConfig() Config {
	cfg := DefaultConfig()
	cfg.ClientID = "test-client"
	cfg.ClientSecret = "test-secret"
	cfg.RefreshToken = "test-token"
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantAuth AuthMethod
		wantErrs []string
	}{
		{
			name:     "refresh token",
			mutate:   func(*Config) {},
			wantAuth: AuthRefreshToken,
		},
		{
			name: "service account",
			mutate: func(c *Config) {
				c.ClientID, c.ClientSecret, c.RefreshToken = "", "", ""
				c.ServiceAccountPath = "/path/to/key.json"
			},
			wantAuth: AuthServiceAccount,
		},
		{
			name:     "partial token credentials",
			mutate:   func(c *Config) { c.ClientSecret = "" },
			wantAuth: AuthNone,
			wantErrs: []string{"no authentication method configured"},
		},
		{
			name:     "both methods",
			mutate:   func(c *Config) { c.ServiceAccountPath = "/path/to/key.json" },
			wantAuth: AuthNone,
			wantErrs: []string{"multiple authentication methods configured"},
		},
		{
			name:     "zero batch size",
			mutate:   func(c *Config) { c.BatchSize = 0 },
			wantAuth: AuthRefreshToken,
			wantErrs: []string{"batch size must be positive"},
		},
		{
			name: "every numeric setting wrong",
			mutate: func(c *Config) {
				c.BatchSize = -1
				c.RetryAttempts = -1
				c.RetryDelay = -time.Second
			},
			wantAuth: AuthRefreshToken,
			wantErrs: []string{
				"batch size must be positive",
				"retry attempts cannot be negative",
				"retry delay cannot be negative",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTokenConfig()
			tt.mutate(&cfg)

			assert.Equal(t, tt.wantAuth, cfg.Auth())

			err := cfg.Validate()
			if len(tt.wantErrs) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, msg := range tt.wantErrs {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultSpreadsheetName, cfg.SpreadsheetName)
	assert.True(t, cfg.EnableFormatting)
	assert.Positive(t, cfg.BatchSize)
	assert.Equal(t, AuthNone, cfg.Auth())
	assert.Error(t, cfg.Validate())

	cfg.ServiceAccountPath = "/key.json"
	assert.NoError(t, cfg.Validate())
}

func TestAuthMethod_String(t *testing.T) {
	assert.Equal(t, "service account", AuthServiceAccount.String())
	assert.Equal(t, "refresh token", AuthRefreshToken.String())
	assert.Equal(t, "none", AuthNone.String())
}
