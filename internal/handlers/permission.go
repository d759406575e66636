package handlers

import (
	"bizhub/internal/services"
	"bizhub/pkg/pagination"
	"bizhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type CreatePermissionRequest struct {
	Module      string `json:"module" binding:"required"`
	Action      string `json:"action" binding:"required"`
	Scope       string `json:"scope" binding:"required,oneof=own all"`
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=255"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type PermissionHandler struct {
	service *services.PermissionService
}

func NewPermissionHandler() *PermissionHandler {
	return &PermissionHandler{
		service: services.NewPermissionService(),
	}
}

// GetAll 分页获取权限目录
func (h *PermissionHandler) GetAll(c *gin.Context) {
	params := pagination.ParsePageParams(c)
	module := c.Query("module")

	permissions, total, err := h.service.GetWithPage(module, params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "查询权限失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, permissions, pageInfo)
}

// GetByID 获取权限详情
func (h *PermissionHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "权限ID格式错误")
		return
	}

	permission, err := h.service.GetByID(id)
	if err != nil {
		response.NotFound(c, "权限不存在")
		return
	}

	response.Success(c, permission)
}

// Create 创建权限（平台管理员）
func (h *PermissionHandler) Create(c *gin.Context) {
	var req CreatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	permission, err := h.service.Create(req.Module, req.Action, req.Scope, req.Name, req.Description)
	if err != nil {
		response.BadRequest(c, "创建权限失败: "+err.Error())
		return
	}

	response.SuccessWithMessage(c, "创建成功", permission)
}

// SetActive 启用/停用权限
func (h *PermissionHandler) SetActive(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "权限ID格式错误")
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	permission, err := h.service.SetActive(id, *req.IsActive)
	if err != nil {
		response.NotFound(c, "权限不存在")
		return
	}

	response.SuccessWithMessage(c, "更新成功", permission)
}
