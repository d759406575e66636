package authz

import (
	"testing"

	"bizhub/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeLoader 测试用资源加载器
type fakeLoader struct {
	refs map[uint]*ResourceRef // key为资源ID，缺失视为租户内不存在
}

func (f *fakeLoader) Load(tenantID, id uint) (*ResourceRef, error) {
	ref, ok := f.refs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ref, nil
}

func ownershipEngine(set PermissionSet, refs map[uint]*ResourceRef) *Engine {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	registry := NewRegistry()
	registry.Register(ResourceEvent, &fakeLoader{refs: refs}, models.ModuleEvents, "assigned_to")

	return NewEngine(&fakeResolver{set: set}, registry, nil, log)
}

func ownerRef(ownerID uint) *ResourceRef {
	return &ResourceRef{OwnerID: &ownerID, Resource: struct{}{}}
}

func TestCheckOwnershipOwnerWithOwnPermission(t *testing.T) {
	engine := ownershipEngine(NewPermissionSet("events.update.own"), map[uint]*ResourceRef{
		7: ownerRef(10),
	})
	p := staffPrincipal(1)

	result, err := engine.CheckOwnership(p, ResourceEvent, 7, models.ActionUpdate)

	require.NoError(t, err)
	assert.Equal(t, OwnershipAllowed, result.Outcome)
	assert.NotNil(t, result.Resource)
}

func TestCheckOwnershipNonOwnerWithOnlyOwnPermission(t *testing.T) {
	// .own权限对别人的资源不生效，缺失的是.all变体
	engine := ownershipEngine(NewPermissionSet("events.update.own"), map[uint]*ResourceRef{
		7: ownerRef(99),
	})
	p := staffPrincipal(1)

	result, err := engine.CheckOwnership(p, ResourceEvent, 7, models.ActionUpdate)

	require.NoError(t, err)
	assert.Equal(t, OwnershipDenied, result.Outcome)
	assert.Equal(t, ReasonPermissionDenied, result.Decision.Reason)
	assert.Equal(t, "events.update.all", result.Decision.RequiredPermission)
}

func TestCheckOwnershipNonOwnerWithAllPermission(t *testing.T) {
	engine := ownershipEngine(NewPermissionSet("events.update.all"), map[uint]*ResourceRef{
		7: ownerRef(99),
	})
	p := staffPrincipal(1)

	result, err := engine.CheckOwnership(p, ResourceEvent, 7, models.ActionUpdate)

	require.NoError(t, err)
	assert.Equal(t, OwnershipAllowed, result.Outcome)
}

func TestCheckOwnershipOwnerFallsBackToAll(t *testing.T) {
	// 归属匹配但没有.own权限时，.all权限仍然可以放行
	engine := ownershipEngine(NewPermissionSet("events.update.all"), map[uint]*ResourceRef{
		7: ownerRef(10),
	})
	p := staffPrincipal(1)

	result, err := engine.CheckOwnership(p, ResourceEvent, 7, models.ActionUpdate)

	require.NoError(t, err)
	assert.Equal(t, OwnershipAllowed, result.Outcome)
}

func TestCheckOwnershipNilOwnerRequiresAll(t *testing.T) {
	// 无主资源强制走.all检查，.own权限不放行
	engine := ownershipEngine(NewPermissionSet("events.update.own"), map[uint]*ResourceRef{
		7: {OwnerID: nil, Resource: struct{}{}},
	})
	p := staffPrincipal(1)

	result, err := engine.CheckOwnership(p, ResourceEvent, 7, models.ActionUpdate)

	require.NoError(t, err)
	assert.Equal(t, OwnershipDenied, result.Outcome)
	assert.Equal(t, "events.update.all", result.Decision.RequiredPermission)
}

func TestCheckOwnershipNotFoundDistinctFromDenied(t *testing.T) {
	engine := ownershipEngine(NewPermissionSet("events.update.own"), map[uint]*ResourceRef{})
	p := staffPrincipal(1)

	result, err := engine.CheckOwnership(p, ResourceEvent, 404, models.ActionUpdate)

	require.NoError(t, err)
	assert.Equal(t, OwnershipNotFound, result.Outcome)
}

func TestCheckOwnershipBypassAll(t *testing.T) {
	engine := ownershipEngine(NewPermissionSet(), map[uint]*ResourceRef{
		7: ownerRef(99),
	})
	p := staffPrincipal(1)
	p.BypassAll = true

	result, err := engine.CheckOwnership(p, ResourceEvent, 7, models.ActionUpdate)

	require.NoError(t, err)
	assert.Equal(t, OwnershipAllowed, result.Outcome)
}

func TestCheckOwnershipUnregisteredResourceType(t *testing.T) {
	engine := ownershipEngine(NewPermissionSet(), map[uint]*ResourceRef{})
	p := staffPrincipal(1)

	_, err := engine.CheckOwnership(p, ResourceType("warehouse"), 1, models.ActionUpdate)

	assert.Error(t, err)
}

func TestCheckOwnershipNilPrincipal(t *testing.T) {
	engine := ownershipEngine(NewPermissionSet(), map[uint]*ResourceRef{})

	result, err := engine.CheckOwnership(nil, ResourceEvent, 1, models.ActionUpdate)

	require.NoError(t, err)
	assert.Equal(t, OwnershipDenied, result.Outcome)
	assert.Equal(t, ReasonUnauthenticated, result.Decision.Reason)
}
