package models

import "time"

// Event 活动模型（演出/包场/培训等）
// 归属判断使用 assigned_to 字段：活动由负责的员工"拥有"，而不是录入人
type Event struct {
	BaseModel
	TenantID   uint       `gorm:"not null;index" json:"tenant_id"`
	Title      string     `gorm:"size:200;not null" json:"title"`
	Venue      string     `gorm:"size:200" json:"venue"`
	StartAt    time.Time  `gorm:"not null" json:"start_at"`
	EndAt      *time.Time `json:"end_at"`
	Status     string     `gorm:"size:20;default:'planned'" json:"status"` // planned/confirmed/done/cancelled
	ClientID   *uint      `gorm:"index" json:"client_id"`
	CreatedBy  uint       `gorm:"not null" json:"created_by"` // 录入人
	AssignedTo *uint      `gorm:"index" json:"assigned_to"`   // 负责员工，归属字段

	// 关联
	Tenant *Tenant `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// TableName 表名
func (Event) TableName() string {
	return "events"
}

// 活动状态常量
const (
	EventStatusPlanned   = "planned"
	EventStatusConfirmed = "confirmed"
	EventStatusDone      = "done"
	EventStatusCancelled = "cancelled"
)
