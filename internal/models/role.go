package models

import "time"

// Role 角色模型
// (TenantID, Name) 唯一；Level 在租户内对角色做全序排列，数值越大权限越高
type Role struct {
	BaseModel
	TenantID    uint   `gorm:"not null;uniqueIndex:idx_tenant_role_name" json:"tenant_id"` // 所属租户
	Name        string `gorm:"size:100;not null;uniqueIndex:idx_tenant_role_name" json:"name"`
	Description string `gorm:"size:255" json:"description"`            // 角色描述
	Level       int    `gorm:"not null;default:0" json:"level"`        // 层级，用于上下级判断
	IsSystem    bool   `gorm:"default:false" json:"is_system"`         // 系统角色（租户开通时创建，不可删除）
	Status      string `gorm:"size:20;default:'active'" json:"status"` // 状态：active, inactive
	IsArchived  bool   `gorm:"default:false" json:"is_archived"`       // 被引用后只归档不删除
	PermVersion uint   `gorm:"not null;default:0" json:"perm_version"` // 权限包版本号，变更时递增

	// 关联关系
	Tenant      *Tenant      `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions,omitempty"`
}

// TableName 表名
func (Role) TableName() string {
	return "roles"
}

// 角色状态常量
const (
	RoleStatusActive   = "active"
	RoleStatusInactive = "inactive"
)

// 租户默认角色
const (
	RoleNameOwner   = "Owner"   // 商户所有者，无条件放行
	RoleNameManager = "Manager" // 经理
	RoleNameStaff   = "Staff"   // 员工
	RoleNameViewer  = "Viewer"  // 只读
)

// 默认角色层级
const (
	RoleLevelOwner   = 100
	RoleLevelManager = 50
	RoleLevelStaff   = 20
	RoleLevelViewer  = 10
)

// IsUsable 角色是否可用于权限解析
func (r *Role) IsUsable() bool {
	return !r.IsArchived && r.Status == RoleStatusActive
}

// RolePermission 角色权限关联表
type RolePermission struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RoleID       uint      `gorm:"not null;index" json:"role_id"`
	PermissionID uint      `gorm:"not null;index" json:"permission_id"`
	CreatedAt    time.Time `json:"created_at"`
}
