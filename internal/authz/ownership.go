package authz

import (
	"bizhub/internal/models"
	"fmt"
	"sync"
)

// ResourceType 资源类型标识
type ResourceType string

// 已注册的资源类型
const (
	ResourceEvent   ResourceType = "event"
	ResourcePayment ResourceType = "payment"
	ResourceClient  ResourceType = "client"
)

// ResourceRef 归属检查所需的资源信息
type ResourceRef struct {
	OwnerID  *uint       // 归属字段的值，nil表示无主（历史数据）
	Resource interface{} // 已加载的资源实体，供下游处理器复用
}

// ResourceLoader 按租户加载资源
// 实现必须用租户ID做等值过滤，绝不能加载跨租户数据；
// 租户内不存在时返回 gorm.ErrRecordNotFound
type ResourceLoader interface {
	Load(tenantID, id uint) (*ResourceRef, error)
}

// resourceEntry 资源类型的注册配置
// 权限模块名是显式配置出来的，不做任何字符串变形推断
type resourceEntry struct {
	loader         ResourceLoader
	module         string // 权限代码的module段，如 "events"
	ownershipField string // 归属字段名，仅用于日志与配置自述
}

// Registry 资源类型注册表，启动时装配
type Registry struct {
	mu      sync.RWMutex
	entries map[ResourceType]resourceEntry
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{entries: make(map[ResourceType]resourceEntry)}
}

// Register 注册资源类型
func (r *Registry) Register(t ResourceType, loader ResourceLoader, module, ownershipField string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[t] = resourceEntry{loader: loader, module: module, ownershipField: ownershipField}
}

// lookup 查找注册项
func (r *Registry) lookup(t ResourceType) (resourceEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[t]
	return entry, ok
}

// OwnershipOutcome 归属检查结果类型
type OwnershipOutcome int

const (
	OwnershipAllowed  OwnershipOutcome = iota // 放行
	OwnershipDenied                           // 拒绝（权限不足）
	OwnershipNotFound                         // 租户内不存在，与拒绝严格区分
)

// OwnershipResult 归属检查结果
type OwnershipResult struct {
	Outcome  OwnershipOutcome
	Decision Decision    // 拒绝时的决策详情
	Resource interface{} // 放行时已加载的资源
}

// CheckOwnership 归属检查
// 用于主体只持有 .own 权限时对具体资源实例的判定：
//   - 资源按租户加载，跨租户/不存在 → NotFound（不能用不同错误奖励权限探测）
//   - 归属字段等于主体ID → 凭 .own 权限放行
//   - 否则回到决策过程，要求 .all 权限
//   - 归属字段为空（无主）强制走 .all 检查，绝不默认放行
func (e *Engine) CheckOwnership(p *Principal, resourceType ResourceType, resourceID uint, action string) (*OwnershipResult, error) {
	if p == nil {
		return &OwnershipResult{Outcome: OwnershipDenied, Decision: Deny(ReasonUnauthenticated)}, nil
	}

	entry, ok := e.registry.lookup(resourceType)
	if !ok {
		return nil, fmt.Errorf("authz: 未注册的资源类型 %q", resourceType)
	}

	ref, err := entry.loader.Load(p.TenantID, resourceID)
	if err != nil {
		if isNotFound(err) {
			return &OwnershipResult{Outcome: OwnershipNotFound}, nil
		}
		return nil, err
	}

	allPerm := models.PermissionCode(entry.module, action, models.ScopeAll)

	// 归属匹配时 .own 权限即可
	if ref.OwnerID != nil && *ref.OwnerID == p.ID {
		ownPerm := models.PermissionCode(entry.module, action, models.ScopeOwn)
		if d := e.Authorize(p, ownPerm, p.TenantID); d.Allowed {
			return &OwnershipResult{Outcome: OwnershipAllowed, Resource: ref.Resource}, nil
		}
		// 不持有 .own 也可能持有 .all，继续走全量检查
	}

	// 非本人资源（或无主资源）要求 .all 变体
	if d := e.Authorize(p, allPerm, p.TenantID); d.Allowed {
		return &OwnershipResult{Outcome: OwnershipAllowed, Resource: ref.Resource}, nil
	}

	return &OwnershipResult{
		Outcome:  OwnershipDenied,
		Decision: DenyPermission(allPerm),
	}, nil
}
