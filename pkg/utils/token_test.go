package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthTokenRoundTrip(t *testing.T) {
	token, err := GenerateAuthToken("68b1c2d3e4f5a6b7c8d9e0f1", "admin", "secret", 24)
	require.NoError(t, err)

	claims, err := ParseAuthToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "68b1c2d3e4f5a6b7c8d9e0f1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestAuthTokenWrongSecret(t *testing.T) {
	token, err := GenerateAuthToken("68b1c2d3e4f5a6b7c8d9e0f1", "user", "secret", 24)
	require.NoError(t, err)

	_, err = ParseAuthToken(token, "other-secret")
	assert.Error(t, err)
}

func TestAuthTokenGarbage(t *testing.T) {
	_, err := ParseAuthToken("not.a.token", "secret")
	assert.Error(t, err)
}

func TestEmailTokenRoundTrip(t *testing.T) {
	token, err := GenerateEmailToken("asha@example.com", "secret")
	require.NoError(t, err)

	claims, err := ParseEmailToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", claims.Email)
}

func TestEmailTokenNotValidAsAuthSecretMismatch(t *testing.T) {
	token, err := GenerateEmailToken("asha@example.com", "secret")
	require.NoError(t, err)

	_, err = ParseEmailToken(token, "other-secret")
	assert.Error(t, err)
}
