package models

// Tenant 租户模型（商户/场馆）- 贫血模型，只包含数据结构
type Tenant struct {
	BaseModel
	Name    string `json:"name" gorm:"not null;size:100"`
	Code    string `json:"code" gorm:"unique;not null;size:50;index"`
	Status  string `json:"status" gorm:"default:'active';size:20"`
	OwnerID *uint  `json:"owner_id"` // 注册所有者，权限检查无条件放行
}

// TableName 表名
func (t *Tenant) TableName() string {
	return "tenants"
}

// 租户状态常量
const (
	TenantStatusActive   = "active"
	TenantStatusInactive = "inactive"
)
