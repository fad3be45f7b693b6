package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/course-service/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, exp, err := tm.GenerateToken("uid-1", "alice@x.com", domain.RoleUser)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UID)
	assert.Equal(t, "alice@x.com", claims.Email)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestTokenManager_RoleClaimFrozenAtIssuance(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, _, err := tm.GenerateToken("uid-1", "alice@x.com", domain.RoleUser)
	require.NoError(t, err)

	// A role change in the store does not affect an already-issued token.
	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.False(t, claims.Role.IsAdmin())
}

func TestTokenManager_RejectsInvalidTokens(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	t.Run("garbage token", func(t *testing.T) {
		_, err := tm.ParseToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("other-secret", 60)
		token, _, err := other.GenerateToken("uid-1", "alice@x.com", domain.RoleAdmin)
		require.NoError(t, err)

		_, err = tm.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		short := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}
		token, _, err := short.GenerateToken("uid-1", "alice@x.com", domain.RoleUser)
		require.NoError(t, err)

		_, err = tm.ParseToken(token)
		assert.Error(t, err)
	})
}

func TestTokenManager_ArbitraryRoleString(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	// Roles are free-form; only the exact string "admin" is privileged.
	token, _, err := tm.GenerateToken("uid-1", "eve@x.com", domain.Role("superadmin"))
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Role("superadmin"), claims.Role)
	assert.False(t, claims.Role.IsAdmin())
}
