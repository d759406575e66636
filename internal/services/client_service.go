package services

import (
	"bizhub/internal/database"
	"bizhub/internal/models"

	"gorm.io/gorm"
)

type ClientService struct {
	db *gorm.DB
}

func NewClientService() *ClientService {
	return &ClientService{
		db: database.GetDB(),
	}
}

// CreateClientRequest 创建客户请求
type CreateClientRequest struct {
	Name    string  `json:"name" binding:"required,max=100"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Company string  `json:"company" binding:"max=200"`
	Remark  string  `json:"remark" binding:"max=500"`
}

// Create 创建客户
func (s *ClientService) Create(tenantID, creatorID uint, req *CreateClientRequest) (*models.Client, error) {
	client := &models.Client{
		TenantID:  tenantID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Remark:    req.Remark,
		CreatedBy: creatorID,
	}

	err := s.db.Create(client).Error
	return client, err
}

// GetWithPage 分页获取租户客户
func (s *ClientService) GetWithPage(tenantID uint, keyword string, page, pageSize int) ([]*models.Client, int64, error) {
	var clients []*models.Client
	var total int64

	query := s.db.Model(&models.Client{}).Scopes(models.TenantScoped(tenantID))

	if keyword != "" {
		query = query.Where("name LIKE ? OR company LIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&clients).Error
	if err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

// Update 更新客户
// 客户记录由归属中间件加载并传入
func (s *ClientService) Update(client *models.Client, req *CreateClientRequest) (*models.Client, error) {
	client.Name = req.Name
	client.Email = req.Email
	client.Phone = req.Phone
	client.Company = req.Company
	client.Remark = req.Remark

	err := s.db.Save(client).Error
	return client, err
}

// Delete 删除客户
func (s *ClientService) Delete(client *models.Client) error {
	return s.db.Delete(client).Error
}
