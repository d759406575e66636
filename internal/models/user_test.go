package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndCheckPassword(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("Secret@123"))

	assert.NotEqual(t, "Secret@123", user.PasswordHash)
	assert.True(t, user.CheckPassword("Secret@123"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestCustomPermissionsRoundTrip(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetCustomPermissions(&CustomPermissionSet{
		Granted: []string{"events.update.own"},
		Revoked: []string{"finance.read.all"},
	}))

	set, err := user.GetCustomPermissions()
	require.NoError(t, err)
	assert.Equal(t, []string{"events.update.own"}, set.Granted)
	assert.Equal(t, []string{"finance.read.all"}, set.Revoked)
}

func TestCustomPermissionsEmpty(t *testing.T) {
	user := &User{}

	set, err := user.GetCustomPermissions()
	require.NoError(t, err)
	assert.Empty(t, set.Granted)
	assert.Empty(t, set.Revoked)
}

func TestUserIsActive(t *testing.T) {
	user := &User{Status: UserStatusActive}
	assert.True(t, user.IsActive())

	user.Status = UserStatusLocked
	assert.False(t, user.IsActive())

	user.Status = UserStatusActive
	user.IsArchived = true
	assert.False(t, user.IsActive())
}

func TestPermissionCode(t *testing.T) {
	assert.Equal(t, "events.update.own", PermissionCode(ModuleEvents, ActionUpdate, ScopeOwn))
	assert.Equal(t, "business.update", PermissionCode(ModuleBusiness, ActionUpdate, ""))
}

func TestRoleIsUsable(t *testing.T) {
	role := &Role{Status: RoleStatusActive}
	assert.True(t, role.IsUsable())

	role.Status = RoleStatusInactive
	assert.False(t, role.IsUsable())

	role.Status = RoleStatusActive
	role.IsArchived = true
	assert.False(t, role.IsUsable())
}
