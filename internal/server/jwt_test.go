package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/config"
)

func TestJWTService_RoundTrip(t *testing.T) {
	s := NewJWTService(testJWTConfig())
	id := uuid.New()

	token, err := s.GenerateToken(id)
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.GetUserID())
	assert.Equal(t, "cvbuilder", claims.Issuer)
	assert.Equal(t, id.String(), claims.Subject)

	getter, err := s.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, getter.GetUserID())
}

func TestJWTService_Rejects(t *testing.T) {
	id := uuid.New()
	good := NewJWTService(testJWTConfig())

	expired := NewJWTService(testJWTConfig())
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.GenerateToken(id)
	require.NoError(t, err)

	otherSecret := NewJWTService(&config.JWTConfig{Secret: "another-secret-value-123", Issuer: "cvbuilder", ExpirationHours: 1})
	forged, err := otherSecret.GenerateToken(id)
	require.NoError(t, err)

	otherIssuer := NewJWTService(&config.JWTConfig{Secret: testSecret, Issuer: "someone-else", ExpirationHours: 1})
	foreign, err := otherIssuer.GenerateToken(id)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: id}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "cvbuilder",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := map[string]string{
		"empty":        "",
		"garbage":      "not.a.token",
		"expired":      expiredToken,
		"wrong secret": forged,
		"wrong issuer": foreign,
		"alg none":     none,
		"no user id":   noUser,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := good.ValidateToken(token)
			assert.Error(t, err)
		})
	}
}
