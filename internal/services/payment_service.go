package services

import (
	"bizhub/internal/database"
	"bizhub/internal/models"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService() *PaymentService {
	return &PaymentService{
		db: database.GetDB(),
	}
}

// CreatePaymentRequest 创建收款请求
type CreatePaymentRequest struct {
	EventID  *uint  `json:"event_id"`
	ClientID *uint  `json:"client_id"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
	Currency string `json:"currency" binding:"max=10"`
	Method   string `json:"method" binding:"max=20"`
	Remark   string `json:"remark" binding:"max=500"`
}

// Create 创建收款记录
func (s *PaymentService) Create(tenantID, creatorID uint, req *CreatePaymentRequest) (*models.Payment, error) {
	// 关联的活动必须在本租户内
	if req.EventID != nil {
		var count int64
		s.db.Model(&models.Event{}).Scopes(models.TenantScoped(tenantID)).
			Where("id = ?", *req.EventID).Count(&count)
		if count == 0 {
			return nil, fmt.Errorf("关联的活动不存在")
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = "CNY"
	}

	payment := &models.Payment{
		TenantID:  tenantID,
		EventID:   req.EventID,
		ClientID:  req.ClientID,
		Amount:    req.Amount,
		Currency:  currency,
		Method:    req.Method,
		Status:    models.PaymentStatusPending,
		Remark:    req.Remark,
		CreatedBy: creatorID,
	}

	err := s.db.Create(payment).Error
	return payment, err
}

// GetWithPage 分页获取租户收款记录
func (s *PaymentService) GetWithPage(tenantID uint, status string, page, pageSize int) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64

	query := s.db.Model(&models.Payment{}).Scopes(models.TenantScoped(tenantID))

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// MarkPaid 标记已支付
// 收款记录由归属中间件加载并传入
func (s *PaymentService) MarkPaid(payment *models.Payment) (*models.Payment, error) {
	if payment.Status != models.PaymentStatusPending {
		return nil, fmt.Errorf("只有待支付的记录可以标记为已支付")
	}

	now := time.Now()
	payment.Status = models.PaymentStatusPaid
	payment.PaidAt = &now

	err := s.db.Save(payment).Error
	return payment, err
}

// Refund 退款
func (s *PaymentService) Refund(payment *models.Payment) (*models.Payment, error) {
	if payment.Status != models.PaymentStatusPaid {
		return nil, fmt.Errorf("只有已支付的记录可以退款")
	}

	payment.Status = models.PaymentStatusRefunded
	err := s.db.Save(payment).Error
	return payment, err
}

// Delete 删除收款记录
func (s *PaymentService) Delete(payment *models.Payment) error {
	if payment.Status == models.PaymentStatusPaid {
		return fmt.Errorf("已支付的记录不允许删除")
	}
	return s.db.Delete(payment).Error
}
