package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	tokenStr, err := CreateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	// выписанный токен должен проходить проверку ResolveIdentity
	identity := ResolveIdentity("Bearer " + tokenStr)
	assert.True(t, identity.Authenticated)
	assert.Equal(t, uint(42), identity.UserID)
}

func TestCreateTokenWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := CreateToken(42)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Secret#123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret#123", hash)

	assert.True(t, CheckPassword("Secret#123", hash))
	assert.False(t, CheckPassword("wrong", hash))
}
