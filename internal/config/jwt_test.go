package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		expiration string
		wantHours  int
		wantErr    string
	}{
		{name: "default expiration", secret: "signing-key", wantHours: 24},
		{name: "custom expiration", secret: "signing-key", expiration: "72", wantHours: 72},
		{name: "minimum expiration", secret: "signing-key", expiration: "1", wantHours: 1},
		{name: "missing secret", secret: "", wantErr: "JWT_SECRET"},
		{name: "non-numeric expiration", secret: "signing-key", expiration: "soon", wantErr: "JWT_EXPIRATION_HOURS"},
		{name: "zero expiration", secret: "signing-key", expiration: "0", wantErr: "JWT_EXPIRATION_HOURS"},
		{name: "negative expiration", secret: "signing-key", expiration: "-6", wantErr: "JWT_EXPIRATION_HOURS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tt.secret)
			t.Setenv("JWT_EXPIRATION_HOURS", tt.expiration)

			cfg, err := NewJWTConfig()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.secret, cfg.Secret)
			assert.Equal(t, tt.wantHours, cfg.ExpirationHours)
		})
	}
}
