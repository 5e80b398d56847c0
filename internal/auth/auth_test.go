package auth

import (
	"testing"

	"gymdesk/internal/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateAccessToken(42, "trainer@gym.test", role.Trainer, testSecret)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "trainer@gym.test", claims.Email)
	assert.Equal(t, "trainer", claims.Role)
	assert.Equal(t, "access", claims.TokenType)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "a@b.test", role.Member, testSecret)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := GenerateAccessToken(1, "a@b.test", role.Member, "")
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)

	_, err = ValidateToken("whatever", "")
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)
}

func TestRefreshAccessToken(t *testing.T) {
	_, refresh, err := GenerateTokens(7, "gym@gym.test", role.Gym, testSecret, testSecret)
	require.NoError(t, err)

	access, claims, err := RefreshAccessToken(refresh, testSecret, testSecret)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.Equal(t, 7, claims.UserID)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	access, err := GenerateAccessToken(7, "gym@gym.test", role.Gym, testSecret)
	require.NoError(t, err)

	_, _, err = RefreshAccessToken(access, testSecret, testSecret)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}
