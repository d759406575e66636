package authz

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *PermissionCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewPermissionCache(client, "bizhub", log)
}

func cachePrincipal(userID, permVersion, rolePermVersion uint) *Principal {
	return &Principal{
		ID:              userID,
		TenantID:        1,
		PermVersion:     permVersion,
		RolePermVersion: rolePermVersion,
	}
}

func TestCacheKeyComposition(t *testing.T) {
	cache := NewPermissionCache(nil, "bizhub", nil)

	assert.Equal(t, "bizhub:authz:perms:7:v3:r5", cache.key(cachePrincipal(7, 3, 5)))
}

func TestCacheKeyChangesOnAnyVersionBump(t *testing.T) {
	// 键由(用户ID, 自定义权限版本, 角色权限版本)组成，任意一项变化都指向新键
	cache := NewPermissionCache(nil, "bizhub", nil)
	base := cache.key(cachePrincipal(7, 1, 1))

	assert.NotEqual(t, base, cache.key(cachePrincipal(7, 2, 1)))
	assert.NotEqual(t, base, cache.key(cachePrincipal(7, 1, 2)))
	assert.NotEqual(t, base, cache.key(cachePrincipal(8, 1, 1)))
}

func TestCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	p := cachePrincipal(7, 1, 1)

	_, ok := cache.Get(p)
	require.False(t, ok)

	cache.Set(p, NewPermissionSet("events.update.own", "events.read.all"))

	set, ok := cache.Get(p)
	require.True(t, ok)
	assert.True(t, set.Has("events.update.own"))
	assert.True(t, set.Has("events.read.all"))
	assert.False(t, set.Has("finance.delete.all"))
}

func TestCacheMissAfterVersionBump(t *testing.T) {
	// 角色/覆盖的写入在同一事务里递增版本号，旧缓存条目从此不可达
	cache := newTestCache(t)
	cache.Set(cachePrincipal(7, 1, 4), NewPermissionSet("events.update.own"))

	_, ok := cache.Get(cachePrincipal(7, 2, 4))
	assert.False(t, ok)

	_, ok = cache.Get(cachePrincipal(7, 1, 5))
	assert.False(t, ok)

	_, ok = cache.Get(cachePrincipal(7, 1, 4))
	assert.True(t, ok)
}

func TestRevokeAfterCachedResolutionNotServed(t *testing.T) {
	// 撤销生效的完整路径：旧生效集已缓存，随后自定义覆盖加入撤销并递增版本号。
	// 新版本号的键命不中旧条目，重新合成的生效集不再包含被撤销的权限
	cache := newTestCache(t)
	cache.Set(cachePrincipal(7, 1, 4), NewPermissionSet("events.update.own", "events.list"))

	bumped := cachePrincipal(7, 2, 4)
	bumped.CustomRevoked = []string{"events.update.own"}

	_, ok := cache.Get(bumped)
	require.False(t, ok)

	role := roleWithPermissions("events.update.own", "events.list")
	set := ComputeEffective(role, activeCatalog("events.update.own", "events.list"), nil, bumped.CustomRevoked)
	assert.False(t, set.Has("events.update.own"))
	assert.True(t, set.Has("events.list"))

	cache.Set(bumped, set)
	got, ok := cache.Get(bumped)
	require.True(t, ok)
	assert.False(t, got.Has("events.update.own"))
}

func TestCacheInvalidateAllRemovesEveryEntry(t *testing.T) {
	cache := newTestCache(t)
	first := cachePrincipal(1, 1, 1)
	second := cachePrincipal(2, 3, 7)
	cache.Set(first, NewPermissionSet("events.list"))
	cache.Set(second, NewPermissionSet("finance.read.all"))

	cache.InvalidateAll()

	_, ok := cache.Get(first)
	assert.False(t, ok)
	_, ok = cache.Get(second)
	assert.False(t, ok)
}

func TestEngineInvalidateCachedPermissions(t *testing.T) {
	// 目录级写入（启停权限）不递增任何版本号，引擎必须整体清空缓存
	cache := newTestCache(t)
	p := cachePrincipal(9, 1, 1)
	cache.Set(p, NewPermissionSet("finance.read.all"))

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	engine := NewEngine(nil, NewRegistry(), cache, log)
	engine.InvalidateCachedPermissions()

	_, ok := cache.Get(p)
	assert.False(t, ok)
}
