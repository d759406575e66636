package models

// Client 客户模型
type Client struct {
	BaseModel
	TenantID  uint    `gorm:"not null;index" json:"tenant_id"`
	Name      string  `gorm:"size:100;not null" json:"name"`
	Email     *string `gorm:"size:100" json:"email"`
	Phone     *string `gorm:"size:20" json:"phone"`
	Company   string  `gorm:"size:200" json:"company"`
	Remark    string  `gorm:"size:500" json:"remark"`
	CreatedBy uint    `gorm:"not null;index" json:"created_by"` // 归属字段

	// 关联
	Tenant *Tenant `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
}

// TableName 表名
func (Client) TableName() string {
	return "clients"
}
