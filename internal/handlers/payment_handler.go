package handlers

import (
	"bizhub/internal/middleware"
	"bizhub/internal/models"
	"bizhub/internal/services"
	"bizhub/pkg/pagination"
	"bizhub/pkg/response"

	"github.com/gin-gonic/gin"
)

// PaymentHandler 收款记录处理器
type PaymentHandler struct {
	service *services.PaymentService
}

func NewPaymentHandler() *PaymentHandler {
	return &PaymentHandler{
		service: services.NewPaymentService(),
	}
}

// Create 创建收款记录
func (h *PaymentHandler) Create(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	var req services.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	payment, err := h.service.Create(principal.TenantID, principal.ID, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "创建成功", payment)
}

// GetAll 分页获取收款列表
func (h *PaymentHandler) GetAll(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	params := pagination.ParsePageParams(c)
	status := c.Query("status")

	payments, total, err := h.service.GetWithPage(principal.TenantID, status, params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "查询收款记录失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, payments, pageInfo)
}

// paymentFromContext 取归属中间件已加载并挂到上下文的收款记录
func paymentFromContext(c *gin.Context) *models.Payment {
	if v, exists := c.Get("resource"); exists {
		if payment, ok := v.(*models.Payment); ok {
			return payment
		}
	}
	return nil
}

// GetByID 获取收款详情
// 归属检查由路由中间件完成，记录已加载到上下文，这里不再查询
func (h *PaymentHandler) GetByID(c *gin.Context) {
	payment := paymentFromContext(c)
	if payment == nil {
		response.ServerError(c, "资源未加载")
		return
	}

	response.Success(c, payment)
}

// MarkPaid 标记为已支付
func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	payment := paymentFromContext(c)
	if payment == nil {
		response.ServerError(c, "资源未加载")
		return
	}

	payment, err := h.service.MarkPaid(payment)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "已标记为支付", payment)
}

// Refund 退款
func (h *PaymentHandler) Refund(c *gin.Context) {
	payment := paymentFromContext(c)
	if payment == nil {
		response.ServerError(c, "资源未加载")
		return
	}

	payment, err := h.service.Refund(payment)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "退款成功", payment)
}

// Delete 删除收款记录（已支付的记录不可删除）
func (h *PaymentHandler) Delete(c *gin.Context) {
	payment := paymentFromContext(c)
	if payment == nil {
		response.ServerError(c, "资源未加载")
		return
	}

	if err := h.service.Delete(payment); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}
