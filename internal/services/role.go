package services

import (
	"bizhub/internal/database"
	"bizhub/internal/models"
	"fmt"
	"unicode/utf8"

	"gorm.io/gorm"
)

type RoleService struct {
	db *gorm.DB
}

func NewRoleService() *RoleService {
	return &RoleService{
		db: database.GetDB(),
	}
}

// ========== 基础CRUD方法 ==========

// Create 创建角色
func (s *RoleService) Create(tenantID uint, name, description string, level int) (*models.Role, error) {
	// 验证参数
	if err := s.ValidateCreateParams(name, level); err != nil {
		return nil, err
	}

	// 检查角色名是否重复（在同一租户内）
	var count int64
	s.db.Model(&models.Role{}).Where("tenant_id = ? AND name = ?", tenantID, name).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("角色名已存在")
	}

	role := &models.Role{
		TenantID:    tenantID,
		Name:        name,
		Description: description,
		Level:       level,
		Status:      models.RoleStatusActive,
		IsSystem:    false,
	}

	err := s.db.Create(role).Error
	return role, err
}

// GetByID 租户内根据ID获取角色
func (s *RoleService) GetByID(tenantID, id uint) (*models.Role, error) {
	var role models.Role
	err := s.db.Scopes(models.TenantScoped(tenantID)).Preload("Permissions").First(&role, id).Error
	return &role, err
}

// GetByTenantWithPage 分页获取租户角色
func (s *RoleService) GetByTenantWithPage(tenantID uint, status string, page, pageSize int) ([]*models.Role, int64, error) {
	var roles []*models.Role
	var total int64

	query := s.db.Model(&models.Role{}).Scopes(models.TenantScoped(tenantID)).Where("is_archived = ?", false)

	// 按状态筛选
	if status != "" {
		query = query.Where("status = ?", status)
	}

	// 计算总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	err := query.Preload("Permissions").Offset(offset).Limit(pageSize).Find(&roles).Error
	if err != nil {
		return nil, 0, err
	}

	return roles, total, nil
}

// Update 更新角色
func (s *RoleService) Update(tenantID, id uint, name, description, status string, level int) (*models.Role, error) {
	// 验证参数
	if err := s.ValidateUpdateParams(name, status, level); err != nil {
		return nil, err
	}

	role, err := s.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}

	// 系统角色不能修改
	if role.IsSystem {
		return nil, fmt.Errorf("系统角色不允许修改")
	}

	role.Name = name
	role.Description = description
	role.Status = status
	role.Level = level

	// 状态/层级变化会影响权限解析，递增版本号让缓存失效
	err = s.db.Transaction(func(tx *gorm.DB) error {
		role.PermVersion++
		return tx.Save(role).Error
	})
	return role, err
}

// Delete 删除角色
// 被任何用户引用的角色只归档不删除
func (s *RoleService) Delete(tenantID, id uint) error {
	role, err := s.GetByID(tenantID, id)
	if err != nil {
		return err
	}

	// 系统角色不能删除
	if role.IsSystem {
		return fmt.Errorf("系统角色不允许删除")
	}

	var refs int64
	if err := s.db.Model(&models.User{}).Where("role_id = ?", role.ID).Count(&refs).Error; err != nil {
		return err
	}

	if refs > 0 {
		return s.db.Transaction(func(tx *gorm.DB) error {
			return tx.Model(role).Updates(map[string]interface{}{
				"is_archived":  true,
				"status":       models.RoleStatusInactive,
				"perm_version": gorm.Expr("perm_version + 1"),
			}).Error
		})
	}

	return s.db.Delete(role).Error
}

// ========== 权限管理方法 ==========

// AssignPermissions 为角色分配权限
// 替换权限包和递增版本号在同一事务里完成，
// 保证撤了权限的旧缓存键不可能再被命中
func (s *RoleService) AssignPermissions(tenantID, roleID uint, permissionIDs []uint) error {
	role, err := s.GetByID(tenantID, roleID)
	if err != nil {
		return err
	}

	// 获取权限，目录外的ID直接报错
	var permissions []models.Permission
	err = s.db.Where("id IN ?", permissionIDs).Find(&permissions).Error
	if err != nil {
		return err
	}
	if len(permissions) != len(permissionIDs) {
		return fmt.Errorf("包含目录外的权限ID")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// 清除现有权限，重新分配
		if err := tx.Model(role).Association("Permissions").Replace(permissions); err != nil {
			return err
		}
		return tx.Model(role).Update("perm_version", gorm.Expr("perm_version + 1")).Error
	})
}

// GetRolePermissions 获取角色的权限
func (s *RoleService) GetRolePermissions(tenantID, roleID uint) ([]models.Permission, error) {
	role, err := s.GetByID(tenantID, roleID)
	if err != nil {
		return nil, err
	}
	return role.Permissions, nil
}

// ========== 验证方法 ==========

// ValidateName 验证角色名称
func (s *RoleService) ValidateName(name string) bool {
	runeCount := utf8.RuneCountInString(name)
	return runeCount >= 2 && runeCount <= 50
}

// ValidateStatus 验证角色状态
func (s *RoleService) ValidateStatus(status string) bool {
	return status == models.RoleStatusActive || status == models.RoleStatusInactive
}

// ValidateCreateParams 验证创建角色的参数
func (s *RoleService) ValidateCreateParams(name string, level int) error {
	if !s.ValidateName(name) {
		return fmt.Errorf("角色名称长度必须在2-50个字符之间")
	}
	if level < 0 {
		return fmt.Errorf("角色层级不能为负数")
	}
	return nil
}

// ValidateUpdateParams 验证更新角色的参数
func (s *RoleService) ValidateUpdateParams(name, status string, level int) error {
	if !s.ValidateName(name) {
		return fmt.Errorf("角色名称长度必须在2-50个字符之间")
	}
	if !s.ValidateStatus(status) {
		return fmt.Errorf("状态只能是active或inactive")
	}
	if level < 0 {
		return fmt.Errorf("角色层级不能为负数")
	}
	return nil
}
