package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "password123", hash)
	assert.True(t, CheckPassword("password123", hash))
	assert.False(t, CheckPassword("password124", hash))
}

func TestHashPassword_DefaultCost(t *testing.T) {
	hash, err := HashPassword("password123", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}

func TestHashPassword_LongPasswordWithinPolicy(t *testing.T) {
	plain := strings.Repeat("ñ", 90) // 180 bytes, 90 runes
	require.NoError(t, ValidatePasswordPolicy(plain))

	hash, err := HashPassword(plain, bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, CheckPassword(plain, hash))
}

func TestValidatePasswordPolicy(t *testing.T) {
	assert.ErrorIs(t, ValidatePasswordPolicy("1234567"), ErrPasswordTooShort)
	assert.NoError(t, ValidatePasswordPolicy("12345678"))
	assert.NoError(t, ValidatePasswordPolicy(strings.Repeat("a", 100)))
	assert.ErrorIs(t, ValidatePasswordPolicy(strings.Repeat("a", 101)), ErrPasswordTooLong)
}
