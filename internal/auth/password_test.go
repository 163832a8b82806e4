package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/support-desk/internal/auth"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := auth.HashPassword("hunter2!", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "hunter2!", hash)

	require.NoError(t, auth.ComparePassword(hash, "hunter2!"))
	require.Error(t, auth.ComparePassword(hash, "hunter3!"))
}

func TestHashPasswordClampsInvalidCost(t *testing.T) {
	// an out-of-range cost must not error out; it falls back to the default
	hash, err := auth.HashPassword("hunter2!", -1)
	require.NoError(t, err)
	require.NoError(t, auth.ComparePassword(hash, "hunter2!"))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, bcrypt.DefaultCost, cost)
}

func TestHashPasswordUnique(t *testing.T) {
	first, err := auth.HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := auth.HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
