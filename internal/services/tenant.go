package services

import (
	"bizhub/internal/database"
	"bizhub/internal/models"
	"fmt"

	"gorm.io/gorm"
)

type TenantService struct {
	db *gorm.DB
}

func NewTenantService() *TenantService {
	return &TenantService{
		db: database.GetDB(),
	}
}

// CreateTenantRequest 开通租户请求
type CreateTenantRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	Code          string `json:"code" binding:"required,min=2,max=50"`
	OwnerUsername string `json:"owner_username" binding:"required,min=3,max=50"`
	OwnerEmail    string `json:"owner_email" binding:"required,email"`
	OwnerPassword string `json:"owner_password" binding:"required,min=8"`
	OwnerName     string `json:"owner_name" binding:"required,max=100"`
}

// 租户开通时创建的默认角色
var defaultRoles = []struct {
	Name  string
	Level int
	Desc  string
}{
	{models.RoleNameOwner, models.RoleLevelOwner, "商户所有者"},
	{models.RoleNameManager, models.RoleLevelManager, "经理"},
	{models.RoleNameStaff, models.RoleLevelStaff, "员工"},
	{models.RoleNameViewer, models.RoleLevelViewer, "只读成员"},
}

// ========== 基础CRUD方法 ==========

// Create 开通租户
// 同一事务内创建租户、默认角色和所有者用户
func (s *TenantService) Create(req *CreateTenantRequest) (*models.Tenant, error) {
	// 检查租户代码是否重复
	var count int64
	s.db.Model(&models.Tenant{}).Where("code = ?", req.Code).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("租户代码已存在")
	}

	tenant := &models.Tenant{
		Name:   req.Name,
		Code:   req.Code,
		Status: models.TenantStatusActive,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tenant).Error; err != nil {
			return err
		}

		// 创建默认角色
		var ownerRole *models.Role
		for _, def := range defaultRoles {
			role := &models.Role{
				TenantID:    tenant.ID,
				Name:        def.Name,
				Description: def.Desc,
				Level:       def.Level,
				IsSystem:    true,
				Status:      models.RoleStatusActive,
			}
			if err := tx.Create(role).Error; err != nil {
				return err
			}
			if def.Name == models.RoleNameOwner {
				ownerRole = role
			}
		}

		// 创建所有者用户
		owner := &models.User{
			TenantID: tenant.ID,
			Username: req.OwnerUsername,
			Email:    req.OwnerEmail,
			Name:     req.OwnerName,
			RoleID:   ownerRole.ID,
			RoleType: models.RoleTypeOwner,
			Status:   models.UserStatusActive,
		}
		if err := owner.SetPassword(req.OwnerPassword); err != nil {
			return err
		}
		if err := tx.Create(owner).Error; err != nil {
			return err
		}

		// 回写所有者引用
		tenant.OwnerID = &owner.ID
		return tx.Model(tenant).Update("owner_id", owner.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return tenant, nil
}

// GetByID 根据ID获取租户
func (s *TenantService) GetByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.First(&tenant, id).Error
	return &tenant, err
}

// GetByCode 根据代码获取租户
func (s *TenantService) GetByCode(code string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.Where("code = ?", code).First(&tenant).Error
	return &tenant, err
}

// GetWithPage 分页获取租户列表（平台管理）
func (s *TenantService) GetWithPage(status string, page, pageSize int) ([]*models.Tenant, int64, error) {
	var tenants []*models.Tenant
	var total int64

	query := s.db.Model(&models.Tenant{})

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Find(&tenants).Error
	if err != nil {
		return nil, 0, err
	}

	return tenants, total, nil
}

// UpdateName 更新租户名称（租户成员自助操作）
func (s *TenantService) UpdateName(id uint, name string) (*models.Tenant, error) {
	tenant, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	tenant.Name = name
	err = s.db.Save(tenant).Error
	return tenant, err
}

// UpdateStatus 更新租户状态
func (s *TenantService) UpdateStatus(id uint, status string) (*models.Tenant, error) {
	if status != models.TenantStatusActive && status != models.TenantStatusInactive {
		return nil, fmt.Errorf("状态只能是active或inactive")
	}

	tenant, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	tenant.Status = status
	err = s.db.Save(tenant).Error
	return tenant, err
}
