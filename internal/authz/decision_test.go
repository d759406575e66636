package authz

import (
	"testing"

	"bizhub/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver 测试用解析器，返回固定权限集或错误
type fakeResolver struct {
	set PermissionSet
	err error
}

func (f *fakeResolver) Resolve(p *Principal) (PermissionSet, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.set, nil
}

func newTestEngine(resolver PermissionResolver) *Engine {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewEngine(resolver, NewRegistry(), nil, log)
}

func staffPrincipal(tenantID uint) *Principal {
	return &Principal{
		ID:       10,
		TenantID: tenantID,
		RoleID:   3,
		RoleType: models.RoleTypeStaff,
		RoleName: models.RoleNameStaff,
		Level:    models.RoleLevelStaff,
	}
}

func TestAuthorizeNilPrincipal(t *testing.T) {
	engine := newTestEngine(&fakeResolver{set: NewPermissionSet()})

	decision := engine.Authorize(nil, "events.list", 1)

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonUnauthenticated, decision.Reason)
}

func TestAuthorizeTenantMismatchDenied(t *testing.T) {
	engine := newTestEngine(&fakeResolver{set: NewPermissionSet("events.list")})
	p := staffPrincipal(1)

	decision := engine.Authorize(p, "events.list", 2)

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonTenantMismatch, decision.Reason)
}

func TestAuthorizeTenantMismatchPrecedesBypass(t *testing.T) {
	// 租户检查先于一切规则：超级管理员也不能在这里跨租户漏过去
	engine := newTestEngine(&fakeResolver{set: NewPermissionSet()})
	p := staffPrincipal(1)
	p.IsSuperAdmin = true
	p.BypassAll = true

	decision := engine.Authorize(p, "events.list", 2)

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonTenantMismatch, decision.Reason)
}

func TestAuthorizeBypassAll(t *testing.T) {
	// 放行标记生效时完全不走解析器
	engine := newTestEngine(&fakeResolver{err: ErrRoleNotFound})
	p := staffPrincipal(1)
	p.BypassAll = true

	decision := engine.Authorize(p, "finance.delete.all", 1)

	assert.True(t, decision.Allowed)
}

func TestAuthorizeGrantedPermission(t *testing.T) {
	engine := newTestEngine(&fakeResolver{set: NewPermissionSet("events.list", "events.create")})
	p := staffPrincipal(1)

	assert.True(t, engine.Authorize(p, "events.list", 1).Allowed)
	assert.True(t, engine.Authorize(p, "events.create", 1).Allowed)
}

func TestAuthorizeMissingPermissionDenied(t *testing.T) {
	engine := newTestEngine(&fakeResolver{set: NewPermissionSet("events.list")})
	p := staffPrincipal(1)

	decision := engine.Authorize(p, "events.delete.all", 1)

	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonPermissionDenied, decision.Reason)
	assert.Equal(t, "events.delete.all", decision.RequiredPermission)
}

func TestAuthorizeRoleNotFoundDeniesEverything(t *testing.T) {
	// 角色缺失按全部拒绝处理，绝不能按全部放行
	engine := newTestEngine(&fakeResolver{err: ErrRoleNotFound})
	p := staffPrincipal(1)

	for _, required := range []string{"events.list", "users.create", "business.read"} {
		decision := engine.Authorize(p, required, 1)
		assert.False(t, decision.Allowed)
		assert.Equal(t, ReasonRoleNotFound, decision.Reason)
	}
}

func TestEffectivePermissions(t *testing.T) {
	engine := newTestEngine(&fakeResolver{set: NewPermissionSet("events.list", "clients.list")})
	p := staffPrincipal(1)

	codes, err := engine.EffectivePermissions(p)

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"events.list", "clients.list"}, codes)
}

func TestCheckLevel(t *testing.T) {
	engine := newTestEngine(&fakeResolver{set: NewPermissionSet()})
	p := staffPrincipal(1)

	assert.True(t, engine.CheckLevel(p, models.RoleLevelStaff).Allowed)
	assert.False(t, engine.CheckLevel(p, models.RoleLevelManager).Allowed)

	p.BypassAll = true
	assert.True(t, engine.CheckLevel(p, models.RoleLevelOwner).Allowed)
}

func TestCheckTargetLevelRequiresStrictlyGreater(t *testing.T) {
	// 同级之间不允许横向操作
	engine := newTestEngine(&fakeResolver{set: NewPermissionSet()})
	p := staffPrincipal(1)
	p.Level = models.RoleLevelManager

	assert.True(t, engine.CheckTargetLevel(p, models.RoleLevelStaff).Allowed)
	assert.False(t, engine.CheckTargetLevel(p, models.RoleLevelManager).Allowed)
	assert.False(t, engine.CheckTargetLevel(p, models.RoleLevelOwner).Allowed)
}

func TestNewPrincipalBypassResolution(t *testing.T) {
	ownerRole := &models.Role{Name: models.RoleNameOwner, Level: models.RoleLevelOwner}
	staffRole := &models.Role{Name: models.RoleNameStaff, Level: models.RoleLevelStaff}

	cases := []struct {
		name   string
		user   *models.User
		role   *models.Role
		bypass bool
	}{
		{"普通员工", &models.User{RoleType: models.RoleTypeStaff}, staffRole, false},
		{"超级管理员", &models.User{IsSuperAdmin: true, RoleType: models.RoleTypeStaff}, staffRole, true},
		{"所有者角色类型", &models.User{RoleType: models.RoleTypeOwner}, staffRole, true},
		{"Owner角色", &models.User{RoleType: models.RoleTypeCustom}, ownerRole, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewPrincipal(tc.user, tc.role)
			require.NoError(t, err)
			assert.Equal(t, tc.bypass, p.BypassAll)
		})
	}
}
