package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimingSafeEqual(t *testing.T) {
	assert.True(t, TimingSafeEqual("secret", "secret"))
	assert.False(t, TimingSafeEqual("secret", "Secret"))
	assert.False(t, TimingSafeEqual("secret", "secret1"))
	assert.False(t, TimingSafeEqual("", "x"))
	assert.True(t, TimingSafeEqual("", ""))
}

func TestHMACRoundTrip(t *testing.T) {
	body := []byte(`{"domain":"acme.com"}`)
	sig := SignHMACSHA256Base64(body, "shh")

	assert.True(t, VerifyHMACSHA256Base64(body, sig, "shh"))
	assert.False(t, VerifyHMACSHA256Base64(body, sig, "other"))
	assert.False(t, VerifyHMACSHA256Base64([]byte(`{"domain":"evil.com"}`), sig, "shh"))
	assert.False(t, VerifyHMACSHA256Base64(body, "", "shh"))
	assert.False(t, VerifyHMACSHA256Base64(body, sig, ""))
}

func TestHMACKnownVector(t *testing.T) {
	// RFC 4231 test case 2
	sig := SignHMACSHA256Base64([]byte("what do ya want for nothing?"), "Jefe")
	assert.Equal(t, "W9zBRr9gdU5qBCQmCJV1x1oAPwidJzmDnexYuWTsOEM=", sig)
}

func signToken(t *testing.T, secret string, claims jwt.RegisteredClaims, method jwt.SigningMethod) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestTokenVerifier(t *testing.T) {
	v := NewTokenVerifier("jwt-secret")

	t.Run("Valid token", func(t *testing.T) {
		tok := signToken(t, "jwt-secret", jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}, jwt.SigningMethodHS256)

		id, err := v.UserID("Bearer " + tok)
		require.NoError(t, err)
		assert.Equal(t, "user-1", id)
	})

	t.Run("Missing header", func(t *testing.T) {
		_, err := v.UserID("")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		tok := signToken(t, "other", jwt.RegisteredClaims{Subject: "user-1"}, jwt.SigningMethodHS256)
		_, err := v.UserID("Bearer " + tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		tok := signToken(t, "jwt-secret", jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		}, jwt.SigningMethodHS256)
		_, err := v.UserID("Bearer " + tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("No subject", func(t *testing.T) {
		tok := signToken(t, "jwt-secret", jwt.RegisteredClaims{}, jwt.SigningMethodHS256)
		_, err := v.UserID("Bearer " + tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
