package router

import (
	"bizhub/internal/authz"
	"bizhub/internal/handlers"
	"bizhub/internal/middleware"
	"bizhub/internal/models"
	"bizhub/internal/services"
	"bizhub/pkg/response"
	"time"

	"github.com/gin-gonic/gin"
)

// SetupRouter 设置路由
func SetupRouter() *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	// 注册路由
	registerRoutes(router)
	return router
}

// 注册所有路由
func registerRoutes(router *gin.Engine) {

	auth := middleware.NewAuthMiddleware()

	// API路由组
	api := router.Group("/api/v1")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// 认证路由
		authHandler := handlers.NewAuthHandler(services.NewUserService(), services.NewTenantService())
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.POST("/refresh", authHandler.RefreshToken)

			// 获取当前用户完整信息（含生效权限）
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Me)

			// 租户切换（仅平台管理员，签发带目标租户的新令牌）
			authGroup.POST("/switch-tenant", auth.RequireLogin(), auth.RequireSuperAdmin(), authHandler.SwitchTenant)
		}

		// 成员管理路由
		userHandler := handlers.NewUserHandler()
		users := api.Group("/users", auth.RequireLogin())
		{
			users.POST("", auth.RequirePermission("users.create"), userHandler.Create)
			users.GET("", auth.RequirePermission("users.list"), userHandler.GetAll)
			users.GET("/:id", auth.RequirePermission("users.read"), userHandler.GetByID)
			users.PUT("/:id", auth.RequirePermission("users.update"), userHandler.Update)
			users.DELETE("/:id", auth.RequirePermission("users.delete"), userHandler.Archive)

			// 角色分配与权限覆盖，层级守卫在处理器内完成
			users.POST("/:id/role", auth.RequirePermission("users.update"), userHandler.AssignRole)
			users.PUT("/:id/custom-permissions", auth.RequirePermission("users.update"), userHandler.SetCustomPermissions)
			users.GET("/:id/permissions", auth.RequirePermission("users.read"), userHandler.GetPermissions)
		}

		// 角色管理路由
		roleHandler := handlers.NewRoleHandler()
		roles := api.Group("/roles", auth.RequireLogin(), auth.RequireRoleLevel(models.RoleLevelManager))
		{
			roles.POST("", auth.RequirePermission("roles.create"), roleHandler.Create)
			roles.GET("", auth.RequirePermission("roles.list"), roleHandler.GetAll)
			roles.GET("/:id", auth.RequirePermission("roles.read"), roleHandler.GetByID)
			roles.PUT("/:id", auth.RequirePermission("roles.update"), roleHandler.Update)
			roles.DELETE("/:id", auth.RequirePermission("roles.delete"), roleHandler.Delete)

			roles.PUT("/:id/permissions", auth.RequirePermission("roles.update"), roleHandler.AssignPermissions)
			roles.GET("/:id/permissions", auth.RequirePermission("roles.read"), roleHandler.GetPermissions)
		}

		// 权限目录路由
		permissionHandler := handlers.NewPermissionHandler()
		permissions := api.Group("/permissions", auth.RequireLogin())
		{
			// 目录查询供角色配置界面使用
			permissions.GET("", auth.RequirePermission("roles.read"), permissionHandler.GetAll)
			permissions.GET("/:id", auth.RequirePermission("roles.read"), permissionHandler.GetByID)

			// 目录维护仅限平台管理员
			permissions.POST("", auth.RequireSuperAdmin(), permissionHandler.Create)
			permissions.PUT("/:id/active", auth.RequireSuperAdmin(), permissionHandler.SetActive)
		}

		// 租户路由
		tenantHandler := handlers.NewTenantHandler()
		{
			// 租户自助设置
			business := api.Group("/business", auth.RequireLogin())
			business.GET("", auth.RequirePermission("business.read"), tenantHandler.GetMine)
			business.PUT("", auth.RequirePermission("business.update"), tenantHandler.UpdateMine)

			// 平台管理（仅平台管理员）
			tenants := api.Group("/tenants", auth.RequireLogin(), auth.RequireSuperAdmin())
			tenants.POST("", tenantHandler.Create)
			tenants.GET("", tenantHandler.GetAll)
			tenants.GET("/:id", tenantHandler.GetByID)
			tenants.PUT("/:id/status", tenantHandler.UpdateStatus)
		}

		// 成员邀请路由
		invitationHandler := handlers.NewInvitationHandler()
		invitations := api.Group("/invitations")
		{
			// 受邀人接口（无需认证）
			invitations.GET("/token/:token", invitationHandler.GetByToken)
			invitations.POST("/accept", invitationHandler.Accept)
			invitations.POST("/reject", invitationHandler.Reject)

			invitations.POST("", auth.RequireLogin(), auth.RequirePermission("invitations.create"), invitationHandler.Create)
			invitations.GET("", auth.RequireLogin(), auth.RequirePermission("invitations.list"), invitationHandler.GetAll)
		}

		// 活动路由（单资源操作走归属检查）
		eventHandler := handlers.NewEventHandler()
		events := api.Group("/events", auth.RequireLogin())
		{
			events.POST("", auth.RequirePermission("events.create"), eventHandler.Create)
			events.GET("", auth.RequirePermission("events.list"), eventHandler.GetAll)
			events.GET("/:id", auth.RequireOwnership(authz.ResourceEvent, models.ActionRead), eventHandler.GetByID)
			events.PUT("/:id", auth.RequireOwnership(authz.ResourceEvent, models.ActionUpdate), eventHandler.Update)
			events.DELETE("/:id", auth.RequireOwnership(authz.ResourceEvent, models.ActionDelete), eventHandler.Delete)
		}

		// 收款路由
		paymentHandler := handlers.NewPaymentHandler()
		payments := api.Group("/payments", auth.RequireLogin())
		{
			payments.POST("", auth.RequirePermission("finance.create"), paymentHandler.Create)
			payments.GET("", auth.RequirePermission("finance.list"), paymentHandler.GetAll)
			payments.GET("/:id", auth.RequireOwnership(authz.ResourcePayment, models.ActionRead), paymentHandler.GetByID)
			payments.POST("/:id/paid", auth.RequireOwnership(authz.ResourcePayment, models.ActionUpdate), paymentHandler.MarkPaid)
			payments.POST("/:id/refund", auth.RequireOwnership(authz.ResourcePayment, models.ActionUpdate), paymentHandler.Refund)
			payments.DELETE("/:id", auth.RequireOwnership(authz.ResourcePayment, models.ActionDelete), paymentHandler.Delete)
		}

		// 客户路由
		clientHandler := handlers.NewClientHandler()
		clients := api.Group("/clients", auth.RequireLogin())
		{
			clients.POST("", auth.RequirePermission("clients.create"), clientHandler.Create)
			clients.GET("", auth.RequirePermission("clients.list"), clientHandler.GetAll)
			clients.GET("/:id", auth.RequireOwnership(authz.ResourceClient, models.ActionRead), clientHandler.GetByID)
			clients.PUT("/:id", auth.RequireOwnership(authz.ResourceClient, models.ActionUpdate), clientHandler.Update)
			clients.DELETE("/:id", auth.RequireOwnership(authz.ResourceClient, models.ActionDelete), clientHandler.Delete)
		}
	}
}

// 健康检查
func healthCheck(c *gin.Context) {
	data := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now(),
		"service":   "BizHub",
		"version":   "1.0.0",
	}
	response.Success(c, data)
}

func ping(c *gin.Context) {
	response.SuccessWithMessage(c, "pong", nil)
}
