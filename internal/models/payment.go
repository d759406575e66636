package models

import "time"

// Payment 收款记录
type Payment struct {
	BaseModel
	TenantID  uint       `gorm:"not null;index" json:"tenant_id"`
	EventID   *uint      `gorm:"index" json:"event_id"`
	ClientID  *uint      `gorm:"index" json:"client_id"`
	Amount    int64      `gorm:"not null" json:"amount"`                  // 金额（分）
	Currency  string     `gorm:"size:10;default:'CNY'" json:"currency"`   // 币种
	Method    string     `gorm:"size:20" json:"method"`                   // 支付方式：cash/card/transfer
	Status    string     `gorm:"size:20;default:'pending'" json:"status"` // pending/paid/refunded
	PaidAt    *time.Time `json:"paid_at"`
	Remark    string     `gorm:"size:500" json:"remark"`
	CreatedBy uint       `gorm:"not null;index" json:"created_by"` // 归属字段

	// 关联
	Tenant *Tenant `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Event  *Event  `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// TableName 表名
func (Payment) TableName() string {
	return "payments"
}

// 收款状态常量
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)
