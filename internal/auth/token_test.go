package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", "museworks")

	token, err := m.GenerateToken("user-1", time.Hour)
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "museworks", claims.Issuer)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", "museworks")

	expired, err := m.GenerateToken("user-1", -time.Minute)
	require.NoError(t, err)
	_, err = m.ParseToken(expired)
	assert.ErrorIs(t, err, ErrExpiredToken)

	foreign, err := NewTokenManager("other", "museworks").GenerateToken("user-1", time.Hour)
	require.NoError(t, err)
	_, err = m.ParseToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	anonymous, err := m.GenerateToken("", time.Hour)
	require.NoError(t, err)
	_, err = m.ParseToken(anonymous)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
