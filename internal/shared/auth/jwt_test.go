package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := NewJWT(testSecret, time.Hour)

	token, err := j.Generate(123, "test@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := j.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(123), claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "123", claims.Subject)

	parts := strings.Split(token, ".")
	_, err = j.Validate(parts[0] + "." + parts[1] + ".invalid-signature")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = j.Validate("invalid.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = j.Validate("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := NewJWT(testSecret, time.Hour).Generate(1, "a@example.com")
	require.NoError(t, err)

	_, err = NewJWT(strings.Repeat("x", 32), time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := NewJWT(testSecret, time.Hour)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		UserID: 1,
		Email:  "expired@example.com",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = j.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWT_RejectsNoneAlgorithm(t *testing.T) {
	j := NewJWT(testSecret, time.Hour)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: 1,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = j.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
