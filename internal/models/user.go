package models

import (
	"encoding/json"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// User 用户模型（主体）
// 用户只属于一个租户，引用一个角色，角色租户必须与用户租户一致
type User struct {
	BaseModel
	TenantID     uint       `json:"tenant_id" gorm:"not null;index"`
	Username     string     `json:"username" gorm:"unique;not null;size:50;index"`
	Email        string     `json:"email" gorm:"unique;not null;size:100;index"`
	PasswordHash string     `json:"-" gorm:"not null;size:255"`
	Name         string     `json:"name" gorm:"not null;size:100"`
	Phone        *string    `json:"phone" gorm:"size:20"`
	RoleID       uint       `json:"role_id" gorm:"not null;index"`
	RoleType     string     `json:"role_type" gorm:"size:20;not null;default:'custom'"` // owner/manager/staff/viewer/custom
	IsSuperAdmin bool       `json:"is_super_admin" gorm:"default:false"`                // 平台级超级管理员
	Status       string     `json:"status" gorm:"default:'active';size:20"`
	IsArchived   bool       `json:"is_archived" gorm:"default:false"` // 只归档不删除
	PermVersion  uint       `json:"perm_version" gorm:"not null;default:0"` // 自定义权限版本号，变更时递增
	LastLoginAt  *time.Time `json:"last_login_at"`

	// 自定义权限覆盖：{"granted": [...], "revoked": [...]}
	CustomPermissions datatypes.JSON `json:"custom_permissions" gorm:"type:jsonb"`

	// 关联
	Tenant *Tenant `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Role   *Role   `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// TableName 表名
func (u *User) TableName() string {
	return "users"
}

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusLocked   = "locked"
)

// 角色类型常量（快速路径标记）
const (
	RoleTypeOwner   = "owner"
	RoleTypeManager = "manager"
	RoleTypeStaff   = "staff"
	RoleTypeViewer  = "viewer"
	RoleTypeCustom  = "custom"
)

// CustomPermissionSet 用户的自定义权限覆盖
// revoked 的优先级最高：同时出现在角色授予和revoked中的权限一律排除
type CustomPermissionSet struct {
	Granted []string `json:"granted"`
	Revoked []string `json:"revoked"`
}

// SetPassword 设置密码
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// GetCustomPermissions 解析自定义权限覆盖
func (u *User) GetCustomPermissions() (*CustomPermissionSet, error) {
	set := &CustomPermissionSet{}
	if len(u.CustomPermissions) == 0 {
		return set, nil
	}
	if err := json.Unmarshal(u.CustomPermissions, set); err != nil {
		return nil, err
	}
	return set, nil
}

// SetCustomPermissions 写入自定义权限覆盖
func (u *User) SetCustomPermissions(set *CustomPermissionSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return err
	}
	u.CustomPermissions = datatypes.JSON(data)
	return nil
}

// IsActive 用户是否可用
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive && !u.IsArchived
}
