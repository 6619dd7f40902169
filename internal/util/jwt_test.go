package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-for-unit-tests-only-0000"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(42, "ada@uni.edu", "student", testSecret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ada@uni.edu", claims.Email)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "studyhive", claims.Issuer)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(1, "rep@uni.edu", "rep", testSecret, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "a-different-secret-entirely-000000")
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken(1, "late@uni.edu", "student", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testSecret)
	assert.Error(t, err)
}
