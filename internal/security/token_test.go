package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("secret", 42, "alice", time.Hour)
	require.NoError(t, err)

	claims, err := ParseSessionToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AdminID)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	token, err := GenerateSessionToken("secret", 1, "alice", time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionToken(token, "other-secret")
	assert.Error(t, err)
}

func TestParseSessionTokenExpired(t *testing.T) {
	token, err := GenerateSessionToken("secret", 1, "alice", -time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionToken(token, "secret")
	assert.Error(t, err)
}

func TestSessionTokenUniqueIDs(t *testing.T) {
	first, err := GenerateSessionToken("secret", 1, "alice", time.Hour)
	require.NoError(t, err)
	second, err := GenerateSessionToken("secret", 1, "alice", time.Hour)
	require.NoError(t, err)

	firstClaims, err := ParseSessionToken(first, "secret")
	require.NoError(t, err)
	secondClaims, err := ParseSessionToken(second, "secret")
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}
