package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func TestGenerateInternalJWT(t *testing.T) {
	now := time.Now()

	token, expiresAt, err := GenerateInternalJWT(testSecret, "bookhub-loan-service", "bookhub-services", 30*time.Minute, now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(30*time.Minute), expiresAt, time.Second)

	claims, err := ParseInternalJWT(token, testSecret, "bookhub-loan-service", "bookhub-services")
	require.NoError(t, err)
	assert.Equal(t, InternalScope, claims.Scope)
	assert.NotEmpty(t, claims.ID)
}

func TestParseInternalJWT_WrongAudience(t *testing.T) {
	token, _, err := GenerateInternalJWT(testSecret, "bookhub-loan-service", "bookhub-services", time.Minute, time.Now())
	require.NoError(t, err)

	_, err = ParseInternalJWT(token, testSecret, "bookhub-loan-service", "someone-else")

	assert.ErrorIs(t, err, jwt.ErrTokenInvalidAudience)
}

func TestParseInternalJWT_UserTokenRejected(t *testing.T) {
	token, err := GenerateJWT("user-1", testSecret, time.Minute, "bookhub-loan-service")
	require.NoError(t, err)

	_, err = ParseInternalJWT(token, testSecret, "bookhub-loan-service", "bookhub-services")

	assert.Error(t, err)
}

func TestParseAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", testSecret, time.Minute, "bookhub")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, testSecret, "bookhub")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)

	_, err = ParseAndValidateJWT(token, "another-secret", "bookhub")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	expired, err := GenerateJWT("user-1", testSecret, -time.Minute, "bookhub")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, testSecret, "bookhub")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = ParseAndValidateJWT(token, testSecret, "someone-else")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)

	claims, err = ParseAndValidateJWT(token, testSecret, "")
	require.NoError(t, err)
	assert.Equal(t, "bookhub", claims.Issuer)
}

func TestGenerateSecureRandomString(t *testing.T) {
	a, err := GenerateSecureRandomString(16)
	require.NoError(t, err)
	b, err := GenerateSecureRandomString(16)
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)

	_, err = GenerateSecureRandomString(0)
	assert.Error(t, err)
}
