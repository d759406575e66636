package services

import (
	"bizhub/internal/authz"
	"bizhub/internal/database"
	"bizhub/internal/models"

	"gorm.io/gorm"
)

type PermissionService struct {
	db *gorm.DB
}

func NewPermissionService() *PermissionService {
	return &PermissionService{
		db: database.GetDB(),
	}
}

// ========== 基础CRUD方法 ==========

// GetWithPage 分页获取权限目录
func (s *PermissionService) GetWithPage(module string, page, pageSize int) ([]*models.Permission, int64, error) {
	var permissions []*models.Permission
	var total int64

	query := s.db.Model(&models.Permission{})

	// 按模块筛选
	if module != "" {
		query = query.Where("module = ?", module)
	}

	// 计算总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Find(&permissions).Error
	if err != nil {
		return nil, 0, err
	}

	return permissions, total, nil
}

// GetByID 根据ID获取权限
func (s *PermissionService) GetByID(id uint) (*models.Permission, error) {
	var permission models.Permission
	err := s.db.First(&permission, id).Error
	return &permission, err
}

// Create 创建权限（系统级操作，一般预设）
func (s *PermissionService) Create(module, action, scope, name, description string) (*models.Permission, error) {
	permission := &models.Permission{
		Code:        models.PermissionCode(module, action, scope),
		Name:        name,
		Description: description,
		Module:      module,
		Action:      action,
		Scope:       scope,
		IsActive:    true,
	}

	err := s.db.Create(permission).Error
	return permission, err
}

// SetActive 启用/停用权限
// 停用的权限从下一次解析开始不再被授予，无论角色或覆盖是否引用它
func (s *PermissionService) SetActive(id uint, active bool) (*models.Permission, error) {
	var permission models.Permission
	if err := s.db.First(&permission, id).Error; err != nil {
		return nil, err
	}

	permission.IsActive = active
	if err := s.db.Save(&permission).Error; err != nil {
		return nil, err
	}

	// 启停目录条目影响所有用户的生效集，但不递增任何版本号，
	// 缓存的权限集必须全部作废，否则停用的权限还能被缓存命中
	authz.GetEngine().InvalidateCachedPermissions()

	return &permission, nil
}
