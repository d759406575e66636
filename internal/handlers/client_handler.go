package handlers

import (
	"bizhub/internal/middleware"
	"bizhub/internal/models"
	"bizhub/internal/services"
	"bizhub/pkg/pagination"
	"bizhub/pkg/response"

	"github.com/gin-gonic/gin"
)

// ClientHandler 客户处理器
type ClientHandler struct {
	service *services.ClientService
}

func NewClientHandler() *ClientHandler {
	return &ClientHandler{
		service: services.NewClientService(),
	}
}

// Create 创建客户
func (h *ClientHandler) Create(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	var req services.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	client, err := h.service.Create(principal.TenantID, principal.ID, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "创建成功", client)
}

// GetAll 分页获取客户列表
func (h *ClientHandler) GetAll(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	params := pagination.ParsePageParams(c)
	keyword := c.Query("keyword")

	clients, total, err := h.service.GetWithPage(principal.TenantID, keyword, params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "查询客户失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, clients, pageInfo)
}

// clientFromContext 取归属中间件已加载并挂到上下文的客户
func clientFromContext(c *gin.Context) *models.Client {
	if v, exists := c.Get("resource"); exists {
		if client, ok := v.(*models.Client); ok {
			return client
		}
	}
	return nil
}

// GetByID 获取客户详情
// 归属检查由路由中间件完成，客户已加载到上下文，这里不再查询
func (h *ClientHandler) GetByID(c *gin.Context) {
	client := clientFromContext(c)
	if client == nil {
		response.ServerError(c, "资源未加载")
		return
	}

	response.Success(c, client)
}

// Update 更新客户
func (h *ClientHandler) Update(c *gin.Context) {
	client := clientFromContext(c)
	if client == nil {
		response.ServerError(c, "资源未加载")
		return
	}

	var req services.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	client, err := h.service.Update(client, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "更新成功", client)
}

// Delete 删除客户
func (h *ClientHandler) Delete(c *gin.Context) {
	client := clientFromContext(c)
	if client == nil {
		response.ServerError(c, "资源未加载")
		return
	}

	if err := h.service.Delete(client); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}
