package services

import (
	"bizhub/internal/database"
	"bizhub/internal/models"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService() *UserService {
	return &UserService{
		db: database.GetDB(),
	}
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,max=100"`
	Phone    *string `json:"phone"`
	RoleID   uint   `json:"role_id" binding:"required"`
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	Name  string  `json:"name" binding:"required,max=100"`
	Phone *string `json:"phone"`
}

// SetCustomPermissionsRequest 设置自定义权限覆盖请求
type SetCustomPermissionsRequest struct {
	Granted []string `json:"granted"`
	Revoked []string `json:"revoked"`
}

// ========== 基础CRUD方法 ==========

// GetByID 根据ID获取用户（带角色）
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Role").First(&user, id).Error
	return &user, err
}

// GetByTenantAndID 租户内根据ID获取用户
func (s *UserService) GetByTenantAndID(tenantID, id uint) (*models.User, error) {
	var user models.User
	err := s.db.Scopes(models.TenantScoped(tenantID)).Preload("Role").First(&user, id).Error
	return &user, err
}

// GetByUsername 根据用户名获取用户
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Role").Where("username = ?", username).First(&user).Error
	return &user, err
}

// Create 在租户内创建用户
// 角色必须属于同一租户：用户租户与角色租户不一致是数据损坏，必须在写入前拦截
func (s *UserService) Create(tenantID uint, req *CreateUserRequest) (*models.User, error) {
	role, err := s.validateRoleForTenant(tenantID, req.RoleID)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		TenantID: tenantID,
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
		Phone:    req.Phone,
		RoleID:   role.ID,
		RoleType: roleTypeForRole(role),
		Status:   models.UserStatusActive,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Update 更新用户基本信息（租户内）
func (s *UserService) Update(tenantID, id uint, req *UpdateUserRequest) (*models.User, error) {
	user, err := s.GetByTenantAndID(tenantID, id)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Phone = req.Phone

	err = s.db.Save(user).Error
	return user, err
}

// Archive 归档用户（软删除）
// 归档同时递增权限版本号，让缓存的生效权限集立即失效
func (s *UserService) Archive(tenantID, id uint) error {
	user, err := s.GetByTenantAndID(tenantID, id)
	if err != nil {
		return err
	}

	return s.db.Model(user).Updates(map[string]interface{}{
		"is_archived":  true,
		"status":       models.UserStatusInactive,
		"perm_version": gorm.Expr("perm_version + 1"),
	}).Error
}

// UpdateLastLogin 更新最后登录时间
func (s *UserService) UpdateLastLogin(id uint) error {
	now := time.Now()
	return s.db.Model(&models.User{}).Where("id = ?", id).Update("last_login_at", &now).Error
}

// GetWithPage 分页获取租户内用户
func (s *UserService) GetWithPage(tenantID uint, status string, page, pageSize int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := s.db.Model(&models.User{}).Scopes(models.TenantScoped(tenantID))

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
	err := query.Preload("Role").Offset(offset).Limit(pageSize).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ========== 角色与权限覆盖 ==========

// AssignRole 重新分配角色
// 和自定义覆盖的变更一样，在同一事务里递增版本号使旧缓存键失效
func (s *UserService) AssignRole(tenantID, userID, roleID uint) (*models.User, error) {
	user, err := s.GetByTenantAndID(tenantID, userID)
	if err != nil {
		return nil, err
	}

	role, err := s.validateRoleForTenant(tenantID, roleID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(user).Updates(map[string]interface{}{
			"role_id":      role.ID,
			"role_type":    roleTypeForRole(role),
			"perm_version": gorm.Expr("perm_version + 1"),
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetByTenantAndID(tenantID, userID)
}

// SetCustomPermissions 设置自定义权限覆盖
// 授予的代码必须存在于权限目录；撤销无需校验（撤销目录外的代码是无害的）
func (s *UserService) SetCustomPermissions(tenantID, userID uint, req *SetCustomPermissionsRequest) (*models.User, error) {
	user, err := s.GetByTenantAndID(tenantID, userID)
	if err != nil {
		return nil, err
	}

	// 校验授予的权限代码在目录中存在
	if len(req.Granted) > 0 {
		var count int64
		if err := s.db.Model(&models.Permission{}).
			Where("code IN ?", req.Granted).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count != int64(len(req.Granted)) {
			return nil, fmt.Errorf("授予列表中包含目录外的权限代码")
		}
	}

	if err := user.SetCustomPermissions(&models.CustomPermissionSet{
		Granted: req.Granted,
		Revoked: req.Revoked,
	}); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(user).Updates(map[string]interface{}{
			"custom_permissions": user.CustomPermissions,
			"perm_version":       gorm.Expr("perm_version + 1"),
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetByTenantAndID(tenantID, userID)
}

// ========== 内部方法 ==========

// validateRoleForTenant 校验角色属于指定租户且可用
func (s *UserService) validateRoleForTenant(tenantID, roleID uint) (*models.Role, error) {
	var role models.Role
	err := s.db.Scopes(models.TenantScoped(tenantID)).First(&role, roleID).Error
	if err != nil {
		return nil, fmt.Errorf("角色不存在")
	}
	if !role.IsUsable() {
		return nil, fmt.Errorf("角色已归档或停用")
	}
	return &role, nil
}

// roleTypeForRole 由角色推导快速路径标记
func roleTypeForRole(role *models.Role) string {
	if !role.IsSystem {
		return models.RoleTypeCustom
	}
	switch role.Name {
	case models.RoleNameOwner:
		return models.RoleTypeOwner
	case models.RoleNameManager:
		return models.RoleTypeManager
	case models.RoleNameStaff:
		return models.RoleTypeStaff
	case models.RoleNameViewer:
		return models.RoleTypeViewer
	default:
		return models.RoleTypeCustom
	}
}
