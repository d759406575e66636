package authz

import (
	"bizhub/internal/models"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PermissionResolver 生效权限解析器
// 解析失败（角色缺失/归档）必须按"全部拒绝"处理，绝不能按"全部放行"
type PermissionResolver interface {
	Resolve(p *Principal) (PermissionSet, error)
}

// Resolver 基于数据库的解析器实现
// 生效集 = (角色权限 ∩ 目录中活跃的权限) ∪ 自定义授予 − 自定义撤销
type Resolver struct {
	db    *gorm.DB
	cache *PermissionCache // 可为nil，按版本号键控
	log   *logrus.Logger
}

// NewResolver 创建解析器
func NewResolver(db *gorm.DB, cache *PermissionCache, log *logrus.Logger) *Resolver {
	return &Resolver{db: db, cache: cache, log: log}
}

// Resolve 计算主体的生效权限集
// 结果在主体上做请求内记忆，同一请求重复检查不会二次查库
func (r *Resolver) Resolve(p *Principal) (PermissionSet, error) {
	if p.resolved != nil {
		return p.resolved, nil
	}

	// 版本化缓存命中
	if r.cache != nil {
		if set, ok := r.cache.Get(p); ok {
			p.resolved = set
			return set, nil
		}
	}

	// 加载角色及其权限包
	var role models.Role
	err := r.db.Preload("Permissions").First(&role, p.RoleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.WithFields(logrus.Fields{
				"user_id": p.ID,
				"role_id": p.RoleID,
			}).Warn("权限解析失败：主体引用的角色不存在")
			return nil, ErrRoleNotFound
		}
		return nil, err
	}

	// 角色归档/停用、或角色租户与主体租户不一致，一律按角色缺失处理
	if !role.IsUsable() || role.TenantID != p.TenantID {
		r.log.WithFields(logrus.Fields{
			"user_id":   p.ID,
			"role_id":   role.ID,
			"archived":  role.IsArchived,
			"status":    role.Status,
			"tenant_ok": role.TenantID == p.TenantID,
		}).Warn("权限解析失败：角色不可用")
		return nil, ErrRoleNotFound
	}

	// 目录中活跃的权限代码，目录外/停用的代码永远不会被授予
	activeCatalog, err := r.loadActiveCatalog()
	if err != nil {
		return nil, err
	}

	set := ComputeEffective(&role, activeCatalog, p.CustomGranted, p.CustomRevoked)

	if r.cache != nil {
		r.cache.Set(p, set)
	}

	p.resolved = set
	return set, nil
}

// loadActiveCatalog 加载活跃权限目录
func (r *Resolver) loadActiveCatalog() (map[string]bool, error) {
	var codes []string
	err := r.db.Model(&models.Permission{}).
		Where("is_active = ?", true).
		Pluck("code", &codes).Error
	if err != nil {
		return nil, err
	}

	catalog := make(map[string]bool, len(codes))
	for _, code := range codes {
		catalog[code] = true
	}
	return catalog, nil
}

// ComputeEffective 生效权限合成，纯函数
// 撤销的优先级最高：同时被角色授予和自定义撤销的权限一律排除
func ComputeEffective(role *models.Role, activeCatalog map[string]bool, granted, revoked []string) PermissionSet {
	set := make(PermissionSet)

	// 角色权限包，过滤到目录中活跃的条目
	for _, perm := range role.Permissions {
		if perm.IsActive && activeCatalog[perm.Code] {
			set.Add(perm.Code)
		}
	}

	// 自定义授予，同样必须存在于活跃目录
	for _, code := range granted {
		if activeCatalog[code] {
			set.Add(code)
		}
	}

	// 撤销最后应用，覆盖角色授予和自定义授予
	for _, code := range revoked {
		set.Remove(code)
	}

	return set
}
