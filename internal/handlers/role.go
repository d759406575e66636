package handlers

import (
	"bizhub/internal/middleware"
	"bizhub/internal/services"
	"bizhub/pkg/pagination"
	"bizhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=50"`
	Description string `json:"description" binding:"max=255"`
	Level       int    `json:"level" binding:"gte=0"`
}

type UpdateRoleRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=50"`
	Description string `json:"description" binding:"max=255"`
	Status      string `json:"status" binding:"required"`
	Level       int    `json:"level" binding:"gte=0"`
}

type AssignPermissionsRequest struct {
	PermissionIDs []uint `json:"permission_ids" binding:"required"`
}

type RoleHandler struct {
	service *services.RoleService
}

func NewRoleHandler() *RoleHandler {
	return &RoleHandler{
		service: services.NewRoleService(),
	}
}

// ========== 基础CRUD方法 ==========

// Create 创建角色
func (h *RoleHandler) Create(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	role, err := h.service.Create(principal.TenantID, req.Name, req.Description, req.Level)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "创建成功", role)
}

// GetAll 分页获取角色列表
func (h *RoleHandler) GetAll(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	params := pagination.ParsePageParams(c)
	status := c.Query("status")

	roles, total, err := h.service.GetByTenantWithPage(principal.TenantID, status, params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "查询角色失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, roles, pageInfo)
}

// GetByID 获取角色详情
func (h *RoleHandler) GetByID(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "角色ID格式错误")
		return
	}

	role, err := h.service.GetByID(principal.TenantID, id)
	if err != nil {
		response.NotFound(c, "角色不存在")
		return
	}

	response.Success(c, role)
}

// Update 更新角色
func (h *RoleHandler) Update(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "角色ID格式错误")
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	role, err := h.service.Update(principal.TenantID, id, req.Name, req.Description, req.Status, req.Level)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "更新成功", role)
}

// Delete 删除角色（被引用时归档）
func (h *RoleHandler) Delete(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "角色ID格式错误")
		return
	}

	if err := h.service.Delete(principal.TenantID, id); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// ========== 权限管理方法 ==========

// AssignPermissions 为角色分配权限
func (h *RoleHandler) AssignPermissions(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "角色ID格式错误")
		return
	}

	var req AssignPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	if err := h.service.AssignPermissions(principal.TenantID, id, req.PermissionIDs); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "分配成功", nil)
}

// GetPermissions 获取角色的权限
func (h *RoleHandler) GetPermissions(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "角色ID格式错误")
		return
	}

	permissions, err := h.service.GetRolePermissions(principal.TenantID, id)
	if err != nil {
		response.NotFound(c, "角色不存在")
		return
	}

	response.Success(c, permissions)
}
