package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/fertishop-backend/internal/config"
)

func newTestJWTManager(ttl time.Duration) *JWTManager {
	cfg := &config.Config{}
	cfg.App.Name = "fertishop-test"
	cfg.JWT.Secret = "test-secret-key-that-is-long-enough-123"
	cfg.JWT.TokenExpiry = ttl

	return NewJWTManager(cfg)
}

func TestGenerateAndValidateToken(t *testing.T) {
	jm := newTestJWTManager(24 * time.Hour)

	token, err := jm.GenerateToken(42, "grower@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jm.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "grower@example.com", claims.Email)
	assert.Equal(t, "fertishop-test", claims.Issuer)
}

func TestValidateTokenExpired(t *testing.T) {
	jm := newTestJWTManager(-time.Hour)

	token, err := jm.GenerateToken(42, "grower@example.com")
	require.NoError(t, err)

	_, err = jm.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenTampered(t *testing.T) {
	jm := newTestJWTManager(24 * time.Hour)

	token, err := jm.GenerateToken(42, "grower@example.com")
	require.NoError(t, err)

	// Flip the last character of the signature
	last := token[len(token)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	_, err = jm.ValidateToken(tampered)
	assert.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	jm := newTestJWTManager(24 * time.Hour)

	token, err := jm.GenerateToken(42, "grower@example.com")
	require.NoError(t, err)

	other := newTestJWTManager(24 * time.Hour)
	other.config.JWT.Secret = "a-completely-different-secret-key-456"

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	jm := newTestJWTManager(24 * time.Hour)

	for _, input := range []string{"", "garbage", "a.b.c"} {
		_, err := jm.ValidateToken(input)
		assert.Error(t, err, "input %q should not validate", input)
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid bearer", "Bearer abc123", "abc123"},
		{"empty header", "", ""},
		{"missing scheme", "abc123", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"bearer without token", "Bearer ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTokenFromHeader(tt.header))
		})
	}
}
