package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name       string
		bcryptCost string
		pepper     string
		wantCost   int
		wantErr    bool
	}{
		{name: "default cost", wantCost: 12},
		{name: "valid cost", bcryptCost: "10", wantCost: 10},
		{name: "cost too low", bcryptCost: "3", wantErr: true},
		{name: "cost too high", bcryptCost: "15", wantErr: true},
		{name: "invalid cost", bcryptCost: "invalid", wantErr: true},
		{name: "with pepper", bcryptCost: "12", pepper: "test-pepper", wantCost: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.bcryptCost)
			t.Setenv("PASSWORD_PEPPER", tt.pepper)

			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
			assert.Equal(t, tt.pepper, cfg.Pepper)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	for _, pepper := range []string{"", "server-pepper"} {
		cfg := &PasswordConfig{BcryptCost: 4, Pepper: pepper}

		hash, err := cfg.HashPassword("correct horse")
		require.NoError(t, err)
		assert.NotEqual(t, "correct horse", hash)

		assert.True(t, cfg.VerifyPassword("correct horse", hash))
		assert.False(t, cfg.VerifyPassword("wrong horse", hash))
		assert.False(t, cfg.VerifyPassword("correct horse", "not-a-hash"))
	}
}

func TestPasswordConfig_PepperMismatch(t *testing.T) {
	withPepper := &PasswordConfig{BcryptCost: 4, Pepper: "a"}
	withoutPepper := &PasswordConfig{BcryptCost: 4}

	hash, err := withPepper.HashPassword("password123")
	require.NoError(t, err)
	assert.False(t, withoutPepper.VerifyPassword("password123", hash))
}

func TestPasswordConfig_CheckPolicy(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 4}

	assert.Error(t, cfg.CheckPolicy("short"))
	assert.NoError(t, cfg.CheckPolicy("exactly8"))
	assert.Error(t, cfg.CheckPolicy(strings.Repeat("x", 73)))
}
