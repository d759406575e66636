package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.GenerateToken(1, 2, "alice", "staff", false)
	require.NoError(t, err)

	claims, err := manager.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, uint(2), claims.TenantID)
	assert.Equal(t, uint(2), claims.CurrentTenantID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "staff", claims.RoleType)
	assert.False(t, claims.IsSuperAdmin)
}

func TestGenerateTokenWithTenant(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.GenerateTokenWithTenant(1, 2, 5, "admin", "owner", true)
	require.NoError(t, err)

	claims, err := manager.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(2), claims.TenantID)
	assert.Equal(t, uint(5), claims.CurrentTenantID)
	assert.True(t, claims.IsSuperAdmin)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	token, err := manager.GenerateToken(1, 2, "alice", "staff", false)
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.GenerateToken(1, 2, "alice", "staff", false)
	require.NoError(t, err)

	_, err = manager.VerifyToken(token)
	assert.Error(t, err)
}

func TestRefreshTokenKeepsCurrentTenant(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.GenerateTokenWithTenant(1, 2, 5, "admin", "owner", true)
	require.NoError(t, err)

	refreshed, err := manager.RefreshToken(token)
	require.NoError(t, err)

	claims, err := manager.VerifyToken(refreshed)
	require.NoError(t, err)
	assert.Equal(t, uint(5), claims.CurrentTenantID)
}
