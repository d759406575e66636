package authz

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// Engine 访问决策引擎
// 每次请求的决策独立计算，不依赖请求间的任何顺序
type Engine struct {
	resolver PermissionResolver
	registry *Registry
	cache    *PermissionCache // 可为nil
	log      *logrus.Logger
}

// NewEngine 创建决策引擎
func NewEngine(resolver PermissionResolver, registry *Registry, cache *PermissionCache, log *logrus.Logger) *Engine {
	return &Engine{resolver: resolver, registry: registry, cache: cache, log: log}
}

// Registry 引擎使用的资源注册表
func (e *Engine) Registry() *Registry {
	return e.registry
}

// InvalidateCachedPermissions 清空全部权限缓存
// 供目录级管理写入（启停权限）调用：这类变更不递增任何用户/角色的版本号
func (e *Engine) InvalidateCachedPermissions() {
	if e.cache != nil {
		e.cache.InvalidateAll()
	}
}

// Authorize 访问决策
// 检查顺序（命中即返回）：
//  1. 租户不匹配 → 拒绝。此检查无条件先于一切规则，包括超级管理员：
//     超级管理员跨租户必须走显式切换租户的路径，而不是在这里漏过去
//  2. 无条件放行标记（超级管理员/所有者）→ 放行
//  3. 生效权限集包含所需权限 → 放行
//  4. 拒绝，带上缺失的权限代码
func (e *Engine) Authorize(p *Principal, required string, tenantID uint) Decision {
	if p == nil {
		return Deny(ReasonUnauthenticated)
	}

	if p.TenantID != tenantID {
		return Deny(ReasonTenantMismatch)
	}

	if p.BypassAll {
		return Allow()
	}

	perms, err := e.resolver.Resolve(p)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			// 数据完整性问题：按全部拒绝处理，已在解析器里告警
			return Deny(ReasonRoleNotFound)
		}
		e.log.WithError(err).WithField("user_id", p.ID).Error("权限解析出错")
		return Deny(ReasonRoleNotFound)
	}

	if perms.Has(required) {
		return Allow()
	}

	return DenyPermission(required)
}

// EffectivePermissions 返回主体的生效权限代码列表
// 放行标记不在这里展开成全量目录：BypassAll独立于目录内容，便于审计
func (e *Engine) EffectivePermissions(p *Principal) ([]string, error) {
	set, err := e.resolver.Resolve(p)
	if err != nil {
		return nil, err
	}
	return set.List(), nil
}

// CheckLevel 角色层级检查：主体层级必须不低于指定门槛
func (e *Engine) CheckLevel(p *Principal, minLevel int) Decision {
	if p == nil {
		return Deny(ReasonUnauthenticated)
	}
	if p.BypassAll {
		return Allow()
	}
	if p.Level < minLevel {
		return Deny(ReasonHierarchyViolation)
	}
	return Allow()
}

// CheckTargetLevel 针对另一主体的层级检查
// 必须严格高于目标层级：同级之间不允许横向操作（如经理归档另一位经理）
func (e *Engine) CheckTargetLevel(p *Principal, targetLevel int) Decision {
	if p == nil {
		return Deny(ReasonUnauthenticated)
	}
	if p.BypassAll {
		return Allow()
	}
	if p.Level <= targetLevel {
		return Deny(ReasonHierarchyViolation)
	}
	return Allow()
}
