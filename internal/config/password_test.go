package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		pepper   string
		wantCost int
		wantErr  bool
	}{
		{name: "default cost", cost: "", wantCost: 12},
		{name: "minimum cost", cost: "10", wantCost: 10},
		{name: "maximum cost", cost: "14", wantCost: 14},
		{name: "cost below range", cost: "9", wantErr: true},
		{name: "cost above range", cost: "15", wantErr: true},
		{name: "non-numeric cost", cost: "fast", wantErr: true},
		{name: "with pepper", cost: "12", pepper: "site-pepper", wantCost: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.cost)
			t.Setenv("PASSWORD_PEPPER", tt.pepper)

			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
			assert.Equal(t, tt.pepper, cfg.Pepper)
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, cfg.VerifyPassword("correct-horse", hash))
	assert.False(t, cfg.VerifyPassword("battery-staple", hash))

	// bcrypt salts, so hashing the same password twice must differ.
	again, err := cfg.HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
}

func TestVerifyPasswordWithPepper(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "deployment-secret"}

	hash, err := peppered.HashPassword("correct-horse")
	require.NoError(t, err)
	assert.True(t, peppered.VerifyPassword("correct-horse", hash))

	// A hash minted with the pepper must not verify without it, and a
	// rotated pepper invalidates existing hashes.
	bare := &PasswordConfig{BcryptCost: 10}
	assert.False(t, bare.VerifyPassword("correct-horse", hash))

	rotated := &PasswordConfig{BcryptCost: 10, Pepper: "next-secret"}
	assert.False(t, rotated.VerifyPassword("correct-horse", hash))
}

func TestHashPasswordOver72Bytes(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	// bcrypt rejects inputs over 72 bytes instead of truncating.
	hash, err := cfg.HashPassword(strings.Repeat("a", 80))
	assert.Error(t, err)
	assert.Empty(t, hash)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	for _, stored := range []string{"", "not-a-hash", "$2a$12$truncated"} {
		assert.False(t, cfg.VerifyPassword("correct-horse", stored))
	}
}
