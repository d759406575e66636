package authz

import (
	"testing"

	"bizhub/internal/models"

	"github.com/stretchr/testify/assert"
)

func activeCatalog(codes ...string) map[string]bool {
	catalog := make(map[string]bool, len(codes))
	for _, code := range codes {
		catalog[code] = true
	}
	return catalog
}

func roleWithPermissions(codes ...string) *models.Role {
	role := &models.Role{
		Name:   "测试角色",
		Level:  models.RoleLevelStaff,
		Status: models.RoleStatusActive,
	}
	for _, code := range codes {
		role.Permissions = append(role.Permissions, models.Permission{Code: code, IsActive: true})
	}
	return role
}

func TestComputeEffectiveRoleOnly(t *testing.T) {
	role := roleWithPermissions("events.create", "events.list")
	catalog := activeCatalog("events.create", "events.list", "events.update.own")

	set := ComputeEffective(role, catalog, nil, nil)

	assert.True(t, set.Has("events.create"))
	assert.True(t, set.Has("events.list"))
	assert.False(t, set.Has("events.update.own"))
}

func TestComputeEffectiveGrantAddsPermission(t *testing.T) {
	role := roleWithPermissions("events.list")
	catalog := activeCatalog("events.list", "events.update.own")

	set := ComputeEffective(role, catalog, []string{"events.update.own"}, nil)

	assert.True(t, set.Has("events.update.own"))
}

func TestComputeEffectiveRevokeWinsOverRoleGrant(t *testing.T) {
	role := roleWithPermissions("events.list", "events.delete.all")
	catalog := activeCatalog("events.list", "events.delete.all")

	set := ComputeEffective(role, catalog, nil, []string{"events.delete.all"})

	assert.True(t, set.Has("events.list"))
	assert.False(t, set.Has("events.delete.all"))
}

func TestComputeEffectiveRevokeWinsOverCustomGrant(t *testing.T) {
	// 同一权限同时出现在授予和撤销列表时，撤销必须胜出
	role := roleWithPermissions()
	catalog := activeCatalog("finance.read.all")

	set := ComputeEffective(role, catalog, []string{"finance.read.all"}, []string{"finance.read.all"})

	assert.False(t, set.Has("finance.read.all"))
	assert.Empty(t, set.List())
}

func TestComputeEffectiveInactivePermissionNeverGranted(t *testing.T) {
	// 停用的权限不在活跃目录中：无论角色还是自定义授予都不生效
	role := roleWithPermissions("events.list", "events.delete.all")
	catalog := activeCatalog("events.list")

	set := ComputeEffective(role, catalog, []string{"events.delete.all"}, nil)

	assert.True(t, set.Has("events.list"))
	assert.False(t, set.Has("events.delete.all"))
}

func TestComputeEffectiveUnknownGrantIgnored(t *testing.T) {
	role := roleWithPermissions("events.list")
	catalog := activeCatalog("events.list")

	set := ComputeEffective(role, catalog, []string{"no.such.permission"}, nil)

	assert.Equal(t, []string{"events.list"}, set.List())
}

func TestComputeEffectiveIdempotent(t *testing.T) {
	role := roleWithPermissions("events.list", "clients.create")
	catalog := activeCatalog("events.list", "clients.create", "clients.read.own")
	granted := []string{"clients.read.own"}
	revoked := []string{"clients.create"}

	first := ComputeEffective(role, catalog, granted, revoked)
	second := ComputeEffective(role, catalog, granted, revoked)

	assert.ElementsMatch(t, first.List(), second.List())
}

func TestPermissionSetOperations(t *testing.T) {
	set := NewPermissionSet("a.b", "c.d")

	assert.True(t, set.Has("a.b"))
	assert.False(t, set.Has("x.y"))

	set.Add("x.y")
	assert.True(t, set.Has("x.y"))

	set.Remove("a.b")
	assert.False(t, set.Has("a.b"))
	assert.ElementsMatch(t, []string{"c.d", "x.y"}, set.List())
}
