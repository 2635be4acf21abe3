package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenExpiry(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	got, ok := AccessTokenExpiry(signed)
	require.True(t, ok)
	assert.True(t, exp.Equal(got))
}

func TestAccessTokenExpiry_Opaque(t *testing.T) {
	_, ok := AccessTokenExpiry("t1")
	assert.False(t, ok)
	_, ok = AccessTokenExpiry("")
	assert.False(t, ok)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "1"}).
		SignedString([]byte("k"))
	require.NoError(t, err)
	_, ok = AccessTokenExpiry(noExp)
	assert.False(t, ok)
}
