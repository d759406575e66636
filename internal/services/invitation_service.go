package services

import (
	"bizhub/internal/database"
	"bizhub/internal/models"
	"bizhub/pkg/logger"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// InvitationService 邀请服务
type InvitationService struct {
	db          *gorm.DB
	log         *logrus.Logger
	userService *UserService
}

// NewInvitationService 创建邀请服务
func NewInvitationService() *InvitationService {
	return &InvitationService{
		db:          database.GetDB(),
		log:         logger.GetLogger(),
		userService: NewUserService(),
	}
}

// CreateInvitationRequest 创建邀请请求
type CreateInvitationRequest struct {
	Email   string `json:"email" binding:"required,email"`
	RoleID  uint   `json:"role_id" binding:"required"`
	Message string `json:"message" binding:"max=500"`
}

// AcceptInvitationRequest 接受邀请请求
type AcceptInvitationRequest struct {
	Token    string `json:"token" binding:"required"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,max=100"`
}

// CreateInvitation 创建邀请
// 权限检查由路由中间件完成，这里只做数据校验
func (s *InvitationService) CreateInvitation(inviterID, tenantID uint, req *CreateInvitationRequest) (*models.TenantInvitation, error) {
	// 分配的角色必须属于本租户且可用
	var role models.Role
	if err := s.db.Scopes(models.TenantScoped(tenantID)).First(&role, req.RoleID).Error; err != nil {
		return nil, fmt.Errorf("角色不存在")
	}
	if !role.IsUsable() {
		return nil, fmt.Errorf("角色已归档或停用")
	}

	// 检查是否已有待处理的邀请
	var existingInvitation models.TenantInvitation
	err := s.db.Where("tenant_id = ? AND invitee_email = ? AND status = ?",
		tenantID, req.Email, models.InvitationStatusPending).First(&existingInvitation).Error
	if err == nil {
		return nil, fmt.Errorf("该邮箱已有待处理的邀请")
	}

	// 检查邮箱是否已被注册
	var existingUser models.User
	err = s.db.Where("email = ?", req.Email).First(&existingUser).Error
	if err == nil {
		return nil, fmt.Errorf("该邮箱已被注册")
	}

	// 创建邀请
	invitation := &models.TenantInvitation{
		TenantID:     tenantID,
		InviterID:    inviterID,
		InviteeEmail: req.Email,
		RoleID:       req.RoleID,
		Status:       models.InvitationStatusPending,
		Token:        strings.ReplaceAll(uuid.New().String(), "-", ""),
		Message:      req.Message,
		ExpiredAt:    time.Now().Add(7 * 24 * time.Hour), // 7天有效期
	}

	if err := s.db.Create(invitation).Error; err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"email":     req.Email,
		"role_id":   req.RoleID,
	}).Info("创建成员邀请")

	return invitation, nil
}

// GetByToken 根据令牌获取邀请
func (s *InvitationService) GetByToken(token string) (*models.TenantInvitation, error) {
	var invitation models.TenantInvitation
	err := s.db.Preload("Tenant").Preload("Role").Where("token = ?", token).First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// AcceptInvitation 接受邀请
// 同一事务内创建用户并更新邀请状态
func (s *InvitationService) AcceptInvitation(req *AcceptInvitationRequest) (*models.User, error) {
	invitation, err := s.GetByToken(req.Token)
	if err != nil {
		return nil, fmt.Errorf("邀请不存在")
	}

	if !invitation.IsValid() {
		return nil, fmt.Errorf("邀请已失效")
	}

	// 邀请里的角色可能在发出后被归档
	var role models.Role
	if err := s.db.Scopes(models.TenantScoped(invitation.TenantID)).First(&role, invitation.RoleID).Error; err != nil {
		return nil, fmt.Errorf("邀请分配的角色已不存在")
	}
	if !role.IsUsable() {
		return nil, fmt.Errorf("邀请分配的角色已不可用")
	}

	user := &models.User{
		TenantID: invitation.TenantID,
		Username: req.Username,
		Email:    invitation.InviteeEmail,
		Name:     req.Name,
		RoleID:   role.ID,
		RoleType: roleTypeForRole(&role),
		Status:   models.UserStatusActive,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		invitation.Accept()
		invitation.InviteeID = &user.ID
		return tx.Save(invitation).Error
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// RejectInvitation 拒绝邀请
func (s *InvitationService) RejectInvitation(token string) error {
	invitation, err := s.GetByToken(token)
	if err != nil {
		return fmt.Errorf("邀请不存在")
	}

	if !invitation.IsValid() {
		return fmt.Errorf("邀请已失效")
	}

	invitation.Reject()
	return s.db.Save(invitation).Error
}

// GetByTenantWithPage 分页获取租户的邀请列表
func (s *InvitationService) GetByTenantWithPage(tenantID uint, status string, page, pageSize int) ([]*models.TenantInvitation, int64, error) {
	var invitations []*models.TenantInvitation
	var total int64

	query := s.db.Model(&models.TenantInvitation{}).Scopes(models.TenantScoped(tenantID))

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Role").Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&invitations).Error
	if err != nil {
		return nil, 0, err
	}

	return invitations, total, nil
}

// ExpireOverdue 批量标记过期邀请，返回处理条数
func (s *InvitationService) ExpireOverdue() (int64, error) {
	result := s.db.Model(&models.TenantInvitation{}).
		Where("status = ? AND expired_at < ?", models.InvitationStatusPending, time.Now()).
		Update("status", models.InvitationStatusExpired)
	return result.RowsAffected, result.Error
}
