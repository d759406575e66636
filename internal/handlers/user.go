package handlers

import (
	"strconv"

	"bizhub/internal/authz"
	"bizhub/internal/middleware"
	"bizhub/internal/services"
	"bizhub/pkg/pagination"
	"bizhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler() *UserHandler {
	return &UserHandler{
		service: services.NewUserService(),
	}
}

// ========== 基础CRUD方法 ==========

// Create 创建用户
func (h *UserHandler) Create(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user, err := h.service.Create(principal.TenantID, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "创建成功", user)
}

// GetAll 分页获取用户列表
func (h *UserHandler) GetAll(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	params := pagination.ParsePageParams(c)
	status := c.Query("status")

	users, total, err := h.service.GetWithPage(principal.TenantID, status, params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "查询用户失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, users, pageInfo)
}

// GetByID 获取用户详情
func (h *UserHandler) GetByID(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "用户ID格式错误")
		return
	}

	user, err := h.service.GetByTenantAndID(principal.TenantID, id)
	if err != nil {
		response.NotFound(c, "用户不存在")
		return
	}

	response.Success(c, user)
}

// Update 更新用户基本信息
func (h *UserHandler) Update(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "用户ID格式错误")
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user, err := h.service.Update(principal.TenantID, id, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "更新成功", user)
}

// Archive 归档用户
// 主体管理动作：除了权限，还要过层级检查，只能操作层级严格低于自己的成员
func (h *UserHandler) Archive(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "用户ID格式错误")
		return
	}

	if !h.checkTargetLevel(c, principal, id) {
		return
	}

	if err := h.service.Archive(principal.TenantID, id); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "归档成功", nil)
}

// ========== 角色与权限覆盖 ==========

// AssignRole 重新分配角色
func (h *UserHandler) AssignRole(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "用户ID格式错误")
		return
	}

	var req struct {
		RoleID uint `json:"role_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	if !h.checkTargetLevel(c, principal, id) {
		return
	}

	user, err := h.service.AssignRole(principal.TenantID, id, req.RoleID)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "分配成功", user)
}

// SetCustomPermissions 设置自定义权限覆盖
func (h *UserHandler) SetCustomPermissions(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "用户ID格式错误")
		return
	}

	var req services.SetCustomPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	if !h.checkTargetLevel(c, principal, id) {
		return
	}

	user, err := h.service.SetCustomPermissions(principal.TenantID, id, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "设置成功", user)
}

// GetPermissions 查看用户的生效权限集
func (h *UserHandler) GetPermissions(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "用户ID格式错误")
		return
	}

	target, err := h.service.GetByTenantAndID(principal.TenantID, id)
	if err != nil {
		response.NotFound(c, "用户不存在")
		return
	}

	targetPrincipal, err := authz.NewPrincipal(target, target.Role)
	if err != nil {
		response.ServerError(c, "解析权限失败")
		return
	}

	perms, err := authz.GetEngine().EffectivePermissions(targetPrincipal)
	if err != nil {
		response.ServerError(c, "解析权限失败")
		return
	}

	response.Success(c, gin.H{
		"user_id":     target.ID,
		"permissions": perms,
		"bypass_all":  targetPrincipal.BypassAll,
	})
}

// ========== 内部方法 ==========

// checkTargetLevel 针对目标用户的层级检查，未通过时已写响应
func (h *UserHandler) checkTargetLevel(c *gin.Context, principal *authz.Principal, targetID uint) bool {
	target, err := h.service.GetByTenantAndID(principal.TenantID, targetID)
	if err != nil {
		response.NotFound(c, "用户不存在")
		return false
	}

	targetLevel := 0
	if target.Role != nil {
		targetLevel = target.Role.Level
	}

	decision := authz.GetEngine().CheckTargetLevel(principal, targetLevel)
	if !decision.Allowed {
		response.Forbidden(c, "不能操作同级或更高层级的成员")
		return false
	}
	return true
}

// parseIDParam 解析路径中的ID参数
func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
