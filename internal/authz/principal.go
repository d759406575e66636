package authz

import (
	"bizhub/internal/models"
)

// Principal 认证后的请求主体
// 在认证中间件里构建一次，之后所有检查都使用同一份数据，
// 避免在各个检查点重复从字符串比较推导放行条件
type Principal struct {
	ID           uint
	TenantID     uint
	Username     string
	RoleID       uint
	RoleType     string // owner/manager/staff/viewer/custom
	RoleName     string
	Level        int  // 角色层级
	IsSuperAdmin bool // 平台级超级管理员
	BypassAll    bool // 无条件放行标记，只在此处解析一次

	// 自定义权限覆盖
	CustomGranted []string
	CustomRevoked []string

	// 版本号，权限缓存键的组成部分
	PermVersion     uint // 用户自定义权限版本
	RolePermVersion uint // 角色权限包版本

	// 请求内的解析结果缓存
	resolved PermissionSet
}

// NewPrincipal 从用户记录构建主体
// BypassAll 在这里统一解析：超级管理员、roleType为owner、或角色名为"Owner"
func NewPrincipal(user *models.User, role *models.Role) (*Principal, error) {
	custom, err := user.GetCustomPermissions()
	if err != nil {
		return nil, err
	}

	p := &Principal{
		ID:            user.ID,
		TenantID:      user.TenantID,
		Username:      user.Username,
		RoleID:        user.RoleID,
		RoleType:      user.RoleType,
		IsSuperAdmin:  user.IsSuperAdmin,
		CustomGranted: custom.Granted,
		CustomRevoked: custom.Revoked,
		PermVersion:   user.PermVersion,
	}

	if role != nil {
		p.RoleName = role.Name
		p.Level = role.Level
		p.RolePermVersion = role.PermVersion
	}

	p.BypassAll = user.IsSuperAdmin ||
		user.RoleType == models.RoleTypeOwner ||
		(role != nil && role.Name == models.RoleNameOwner)

	return p, nil
}

// PermissionSet 生效权限集合
type PermissionSet map[string]struct{}

// NewPermissionSet 从权限代码列表构建集合
func NewPermissionSet(codes ...string) PermissionSet {
	set := make(PermissionSet, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set
}

// Has 集合是否包含指定权限
func (s PermissionSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

// Add 加入权限
func (s PermissionSet) Add(code string) {
	s[code] = struct{}{}
}

// Remove 移除权限
func (s PermissionSet) Remove(code string) {
	delete(s, code)
}

// List 导出为切片（无序）
func (s PermissionSet) List() []string {
	codes := make([]string, 0, len(s))
	for code := range s {
		codes = append(codes, code)
	}
	return codes
}
