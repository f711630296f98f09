// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	token, err := GenerateJWT(42, "alice", true, 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsStaff)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "recipebox", claims.Issuer)
}

func TestValidateJWTWrongSecret(t *testing.T) {
	SetJWTSecret("first-secret")
	token, err := GenerateJWT(1, "bob", false, 1)
	require.NoError(t, err)

	SetJWTSecret("second-secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTGarbage(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	_, err := ValidateJWT("definitely.not.a.token")
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	token, err := GenerateRefreshToken(7, 24)
	require.NoError(t, err)

	userID, err := ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, userID)
}

func TestTokenIDsAreUnique(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	first, err := GenerateJWT(1, "alice", false, 1)
	require.NoError(t, err)
	second, err := GenerateJWT(1, "alice", false, 1)
	require.NoError(t, err)

	firstClaims, err := ValidateJWT(first)
	require.NoError(t, err)
	secondClaims, err := ValidateJWT(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}
