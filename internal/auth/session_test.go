package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	Init()
	playerID := uuid.New().String()

	token, err := CreateJWT(playerID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, err := AuthenticateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, playerID, sub)
}

func TestAuthenticateJWTRejectsGarbage(t *testing.T) {
	Init()
	_, err := AuthenticateJWT("not-a-token")
	assert.Error(t, err)

	// Tokens signed by a previous key generation are invalid after Init.
	token, err := CreateJWT(uuid.New().String())
	require.NoError(t, err)
	Init()
	_, err = AuthenticateJWT(token)
	assert.Error(t, err)
}
