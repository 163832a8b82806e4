package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/domain"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := auth.NewTokenManager("secret", time.Hour)

	token, expiresAt, err := tm.GenerateToken("user-1", domain.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := auth.NewTokenManager("secret-a", time.Hour)
	other := auth.NewTokenManager("secret-b", time.Hour)

	token, _, err := tm.GenerateToken("user-1", domain.RoleUser)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tm := auth.NewTokenManager("secret", -time.Hour)

	// a non-positive ttl falls back to the default, so build one that expires fast
	short := auth.NewTokenManager("secret", time.Millisecond)
	token, _, err := short.GenerateToken("user-1", domain.RoleUser)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	_, err = tm.ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := auth.NewTokenManager("secret", time.Hour)
	_, err := tm.ParseToken("definitely.not.a-jwt")
	require.Error(t, err)
}
