package handlers

import (
	"bizhub/internal/middleware"
	"bizhub/internal/models"
	"bizhub/internal/services"
	"bizhub/pkg/pagination"
	"bizhub/pkg/response"

	"github.com/gin-gonic/gin"
)

// EventHandler 活动处理器
type EventHandler struct {
	service *services.EventService
}

func NewEventHandler() *EventHandler {
	return &EventHandler{
		service: services.NewEventService(),
	}
}

// Create 创建活动
func (h *EventHandler) Create(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	var req services.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	event, err := h.service.Create(principal.TenantID, principal.ID, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "创建成功", event)
}

// GetAll 分页获取活动列表
func (h *EventHandler) GetAll(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	params := pagination.ParsePageParams(c)
	status := c.Query("status")

	events, total, err := h.service.GetWithPage(principal.TenantID, status, params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "查询活动失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, events, pageInfo)
}

// eventFromContext 取归属中间件已加载并挂到上下文的活动
func eventFromContext(c *gin.Context) *models.Event {
	if v, exists := c.Get("resource"); exists {
		if event, ok := v.(*models.Event); ok {
			return event
		}
	}
	return nil
}

// GetByID 获取活动详情
// 归属检查由路由中间件完成，活动已加载到上下文，这里不再查询
func (h *EventHandler) GetByID(c *gin.Context) {
	event := eventFromContext(c)
	if event == nil {
		response.ServerError(c, "资源未加载")
		return
	}

	response.Success(c, event)
}

// Update 更新活动
func (h *EventHandler) Update(c *gin.Context) {
	event := eventFromContext(c)
	if event == nil {
		response.ServerError(c, "资源未加载")
		return
	}

	var req services.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	event, err := h.service.Update(event, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "更新成功", event)
}

// Delete 删除活动
func (h *EventHandler) Delete(c *gin.Context) {
	event := eventFromContext(c)
	if event == nil {
		response.ServerError(c, "资源未加载")
		return
	}

	if err := h.service.Delete(event); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}
