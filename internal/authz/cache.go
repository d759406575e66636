package authz

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// 缓存TTL兜底。缓存键由(用户ID, 自定义权限版本, 角色权限版本)组成，
// 任何角色/覆盖的写入都会在同一事务里递增版本号，旧键自然失效，
// 所以撤销永远不会从过期缓存里被解析成已授予
const permissionCacheTTL = 10 * time.Minute

// PermissionCache 生效权限集的版本化Redis缓存
type PermissionCache struct {
	client *redis.Client
	prefix string
	log    *logrus.Logger
}

// NewPermissionCache 创建权限缓存
func NewPermissionCache(client *redis.Client, prefix string, log *logrus.Logger) *PermissionCache {
	if prefix == "" {
		prefix = "bizhub"
	}
	return &PermissionCache{client: client, prefix: prefix, log: log}
}

// key 缓存键，版本号变化即视为失效
func (c *PermissionCache) key(p *Principal) string {
	return fmt.Sprintf("%s:authz:perms:%d:v%d:r%d", c.prefix, p.ID, p.PermVersion, p.RolePermVersion)
}

// Get 读取缓存的权限集
func (c *PermissionCache) Get(p *Principal) (PermissionSet, bool) {
	ctx := context.Background()
	data, err := c.client.Get(ctx, c.key(p)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WithError(err).Debug("权限缓存读取失败，回退数据库解析")
		}
		return nil, false
	}

	var codes []string
	if err := json.Unmarshal(data, &codes); err != nil {
		return nil, false
	}
	return NewPermissionSet(codes...), true
}

// Set 写入权限集
func (c *PermissionCache) Set(p *Principal, set PermissionSet) {
	ctx := context.Background()
	data, err := json.Marshal(set.List())
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(p), data, permissionCacheTTL).Err(); err != nil {
		c.log.WithError(err).Debug("权限缓存写入失败")
	}
}

// InvalidateAll 清空所有用户的权限缓存
// 目录级写入（如停用权限）影响所有人的生效集，版本号键控覆盖不到，只能整体清掉
func (c *PermissionCache) InvalidateAll() {
	ctx := context.Background()
	pattern := fmt.Sprintf("%s:authz:perms:*", c.prefix)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.WithError(err).Debug("权限缓存删除失败")
		}
	}
	if err := iter.Err(); err != nil {
		c.log.WithError(err).Warn("权限缓存清理失败")
	}
}
