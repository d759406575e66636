package handlers

import (
	"strings"
	"time"

	"bizhub/internal/authz"
	"bizhub/internal/middleware"
	"bizhub/internal/services"
	"bizhub/pkg/jwt"
	"bizhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService   *services.UserService
	tenantService *services.TenantService
	jwtManager    *jwt.JWTManager
}

func NewAuthHandler(userService *services.UserService, tenantService *services.TenantService) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		tenantService: tenantService,
		jwtManager:    jwt.GetJWTManager(), // 使用全局JWT管理器
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expires_at"`
	User      UserInfo `json:"user"`
}

type UserInfo struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	TenantID     uint   `json:"tenant_id"`
	RoleType     string `json:"role_type"`
	RoleName     string `json:"role_name,omitempty"`
	IsSuperAdmin bool   `json:"is_super_admin"`
}

type SwitchTenantRequest struct {
	TenantID uint `json:"tenant_id" binding:"required"`
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	// 根据用户名获取用户
	user, err := h.userService.GetByUsername(req.Username)
	if err != nil {
		response.Unauthorized(c, "用户名或密码错误")
		return
	}

	// 检查用户状态
	if !user.IsActive() {
		response.Unauthorized(c, "用户已被禁用")
		return
	}

	// 验证密码
	if !user.CheckPassword(req.Password) {
		response.Unauthorized(c, "用户名或密码错误")
		return
	}

	// 生成Token
	token, err := h.jwtManager.GenerateToken(
		user.ID,
		user.TenantID,
		user.Username,
		user.RoleType,
		user.IsSuperAdmin,
	)
	if err != nil {
		response.ServerError(c, "生成Token失败")
		return
	}

	// 更新最后登录时间，失败不影响登录流程
	_ = h.userService.UpdateLastLogin(user.ID)

	// 计算过期时间
	expiresAt := time.Now().Add(h.jwtManager.GetTokenDuration()).Unix()

	roleName := ""
	if user.Role != nil {
		roleName = user.Role.Name
	}

	resp := LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: UserInfo{
			ID:           user.ID,
			Username:     user.Username,
			Email:        user.Email,
			Name:         user.Name,
			TenantID:     user.TenantID,
			RoleType:     user.RoleType,
			RoleName:     roleName,
			IsSuperAdmin: user.IsSuperAdmin,
		},
	}

	response.Success(c, resp)
}

// Logout 用户登出
// JWT是无状态的，登出只是客户端丢弃令牌
func (h *AuthHandler) Logout(c *gin.Context) {
	response.SuccessWithMessage(c, "登出成功", nil)
}

// RefreshToken 刷新Token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		response.Unauthorized(c, "缺少有效的认证头")
		return
	}

	newToken, err := h.jwtManager.RefreshToken(authHeader[7:])
	if err != nil {
		response.Unauthorized(c, "Token无效或已过期")
		return
	}

	expiresAt := time.Now().Add(h.jwtManager.GetTokenDuration()).Unix()
	response.Success(c, gin.H{
		"token":      newToken,
		"expires_at": expiresAt,
	})
}

// Me 获取当前用户完整信息（含生效权限集）
func (h *AuthHandler) Me(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		response.Unauthorized(c, "请先登录")
		return
	}

	user, err := h.userService.GetByID(principal.ID)
	if err != nil {
		response.NotFound(c, "用户不存在")
		return
	}

	perms, err := authz.GetEngine().EffectivePermissions(principal)
	if err != nil {
		response.ServerError(c, "解析权限失败")
		return
	}

	roleName := ""
	if user.Role != nil {
		roleName = user.Role.Name
	}

	response.Success(c, gin.H{
		"user": UserInfo{
			ID:           user.ID,
			Username:     user.Username,
			Email:        user.Email,
			Name:         user.Name,
			TenantID:     principal.TenantID,
			RoleType:     user.RoleType,
			RoleName:     roleName,
			IsSuperAdmin: user.IsSuperAdmin,
		},
		"permissions": perms,
		"bypass_all":  principal.BypassAll,
	})
}

// SwitchTenant 超级管理员切换当前操作租户
// 这是唯一的跨租户路径：签发一个显式指向目标租户的新令牌
func (h *AuthHandler) SwitchTenant(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		response.Unauthorized(c, "请先登录")
		return
	}

	if !principal.IsSuperAdmin {
		response.Forbidden(c, "只有平台管理员可以切换租户")
		return
	}

	var req SwitchTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	// 目标租户必须存在且可用
	tenant, err := h.tenantService.GetByID(req.TenantID)
	if err != nil {
		response.NotFound(c, "租户不存在")
		return
	}

	user, err := h.userService.GetByID(principal.ID)
	if err != nil {
		response.Unauthorized(c, "用户不存在")
		return
	}

	token, err := h.jwtManager.GenerateTokenWithTenant(
		user.ID,
		user.TenantID,
		tenant.ID,
		user.Username,
		user.RoleType,
		user.IsSuperAdmin,
	)
	if err != nil {
		response.ServerError(c, "生成Token失败")
		return
	}

	expiresAt := time.Now().Add(h.jwtManager.GetTokenDuration()).Unix()
	response.Success(c, gin.H{
		"token":             token,
		"expires_at":        expiresAt,
		"current_tenant_id": tenant.ID,
	})
}
