package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")
	token, err := GenerateToken("user-1", secret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
}

func TestTokenExpired(t *testing.T) {
	secret := []byte("secret")
	token, err := GenerateToken("user-1", secret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, secret)
	require.ErrorIs(t, err, ErrExpired)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", []byte("secret"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("other"))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestTokenMalformed(t *testing.T) {
	_, err := ParseToken("not-a-token", []byte("secret"))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestTokensDifferAcrossIssuance(t *testing.T) {
	secret := []byte("secret")
	first, err := GenerateToken("user-1", secret, time.Hour)
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)
	second, err := GenerateToken("user-1", secret, time.Hour)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
