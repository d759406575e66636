package handlers

import (
	"bizhub/internal/middleware"
	"bizhub/internal/services"
	"bizhub/pkg/pagination"
	"bizhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type RejectInvitationRequest struct {
	Token string `json:"token" binding:"required"`
}

// InvitationHandler 成员邀请处理器
type InvitationHandler struct {
	service *services.InvitationService
}

func NewInvitationHandler() *InvitationHandler {
	return &InvitationHandler{
		service: services.NewInvitationService(),
	}
}

// Create 创建邀请
func (h *InvitationHandler) Create(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	var req services.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	invitation, err := h.service.CreateInvitation(principal.ID, principal.TenantID, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "邀请已创建", invitation)
}

// GetAll 分页获取本租户的邀请列表
func (h *InvitationHandler) GetAll(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	params := pagination.ParsePageParams(c)
	status := c.Query("status")

	invitations, total, err := h.service.GetByTenantWithPage(principal.TenantID, status, params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "查询邀请失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, invitations, pageInfo)
}

// GetByToken 根据令牌查看邀请（公开接口，受邀人查看）
func (h *InvitationHandler) GetByToken(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		response.BadRequest(c, "邀请令牌不能为空")
		return
	}

	invitation, err := h.service.GetByToken(token)
	if err != nil {
		response.NotFound(c, "邀请不存在")
		return
	}

	response.Success(c, invitation)
}

// Accept 接受邀请（公开接口）
func (h *InvitationHandler) Accept(c *gin.Context) {
	var req services.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user, err := h.service.AcceptInvitation(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "加入成功", gin.H{
		"user_id":   user.ID,
		"tenant_id": user.TenantID,
		"username":  user.Username,
	})
}

// Reject 拒绝邀请（公开接口）
func (h *InvitationHandler) Reject(c *gin.Context) {
	var req RejectInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	if err := h.service.RejectInvitation(req.Token); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "已拒绝邀请", nil)
}
