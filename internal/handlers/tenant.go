package handlers

import (
	"bizhub/internal/middleware"
	"bizhub/internal/services"
	"bizhub/pkg/pagination"
	"bizhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type UpdateTenantStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

type UpdateBusinessRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type TenantHandler struct {
	service *services.TenantService
}

func NewTenantHandler() *TenantHandler {
	return &TenantHandler{
		service: services.NewTenantService(),
	}
}

// ========== 租户自助方法 ==========

// GetMine 获取当前租户信息
func (h *TenantHandler) GetMine(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	tenant, err := h.service.GetByID(principal.TenantID)
	if err != nil {
		response.NotFound(c, "租户不存在")
		return
	}

	response.Success(c, tenant)
}

// UpdateMine 更新当前租户设置
func (h *TenantHandler) UpdateMine(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	tenant, err := h.service.UpdateName(principal.TenantID, req.Name)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "更新成功", tenant)
}

// ========== 平台管理方法（仅平台管理员） ==========

// Create 开通租户
// 同一事务内创建租户、默认角色和所有者账号
func (h *TenantHandler) Create(c *gin.Context) {
	var req services.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	tenant, err := h.service.Create(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "租户开通成功", tenant)
}

// GetAll 分页获取租户列表
func (h *TenantHandler) GetAll(c *gin.Context) {
	params := pagination.ParsePageParams(c)
	status := c.Query("status")

	tenants, total, err := h.service.GetWithPage(status, params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "查询租户失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, tenants, pageInfo)
}

// GetByID 获取租户详情
func (h *TenantHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "租户ID格式错误")
		return
	}

	tenant, err := h.service.GetByID(id)
	if err != nil {
		response.NotFound(c, "租户不存在")
		return
	}

	response.Success(c, tenant)
}

// UpdateStatus 启用/停用租户
func (h *TenantHandler) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "租户ID格式错误")
		return
	}

	var req UpdateTenantStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	tenant, err := h.service.UpdateStatus(id, req.Status)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "更新成功", tenant)
}
