package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", "studelie", 7)

	token, err := tm.GenerateToken("64f1c0ffee0000000000aaaa")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ValidToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64f1c0ffee0000000000aaaa", claims.UserID)
	assert.Equal(t, "studelie", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", "studelie", 7)
	other := NewTokenManager("secret-b", "studelie", 7)

	token, err := tm.GenerateToken("user-1")
	require.NoError(t, err)

	_, err = other.ValidToken(token)
	require.Error(t, err)
	assert.Equal(t, 401, StatusCode(err))
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", "studelie", -1)

	token, err := tm.GenerateToken("user-1")
	require.NoError(t, err)

	_, err = tm.ValidToken(token)
	require.Error(t, err)
	assert.Equal(t, 401, StatusCode(err))
}

func TestTokenManager_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret", "studelie", 7)

	_, err := tm.ValidToken("not.a.token")
	require.Error(t, err)
}
