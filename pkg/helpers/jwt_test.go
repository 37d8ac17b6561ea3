package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	access, exp, err := m.GenerateAccessToken("user-1", "sid-1")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "sid-1", claims.SessionID)
}

func TestJWTSecretsAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	refresh, _, err := m.GenerateRefreshToken("user-1", "sid-1")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(refresh)
	assert.Error(t, err)

	claims, err := m.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestJWTExpiredToken(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, 24*time.Hour)

	access, _, err := m.GenerateAccessToken("user-1", "sid-1")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(access)
	assert.Error(t, err)
}

func TestJWTRefreshTokenCustomTTL(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	_, exp, err := m.GenerateRefreshTokenTTL("user-1", "sid-1", 720*time.Hour)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now().Add(719*time.Hour)))
}

func TestJWTTamperedToken(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	access, _, err := m.GenerateAccessToken("user-1", "sid-1")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(access + "x")
	assert.Error(t, err)
}
