package middleware

import (
	"bizhub/internal/authz"
	"bizhub/internal/services"
	"bizhub/pkg/jwt"
	"bizhub/pkg/response"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 权限中间件
type AuthMiddleware struct {
	userService *services.UserService
	jwtManager  *jwt.JWTManager
}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{
		userService: services.NewUserService(),
		jwtManager:  jwt.GetJWTManager(), // 使用全局JWT管理器
	}
}

// GetPrincipal 从上下文取认证主体
func GetPrincipal(c *gin.Context) *authz.Principal {
	v, exists := c.Get("principal")
	if !exists {
		return nil
	}
	p, ok := v.(*authz.Principal)
	if !ok {
		return nil
	}
	return p
}

// RequireLogin 认证并构建主体
// 主体（含BypassAll标记）在这里构建一次，后续所有检查使用同一份数据
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 从Authorization头获取JWT token
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		// 检查Bearer格式
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "认证头格式错误")
			c.Abort()
			return
		}

		// 提取token
		tokenString := authHeader[7:] // 去掉 "Bearer "

		// 验证token
		claims, err := m.jwtManager.VerifyToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Token无效或已过期")
			c.Abort()
			return
		}

		// 获取用户信息（带角色）
		user, err := m.userService.GetByID(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "用户不存在")
			c.Abort()
			return
		}

		// 检查用户状态
		if !user.IsActive() {
			response.Unauthorized(c, "用户已被禁用")
			c.Abort()
			return
		}

		// 构建认证主体
		principal, err := authz.NewPrincipal(user, user.Role)
		if err != nil {
			response.ServerError(c, "解析用户权限失败")
			c.Abort()
			return
		}

		// 超级管理员切换租户：令牌里带着显式选择的目标租户，
		// 主体的租户随之切换。除此之外不存在任何跨租户路径
		if claims.IsSuperAdmin && claims.CurrentTenantID != 0 {
			principal.TenantID = claims.CurrentTenantID
		}

		// 将主体信息保存到上下文
		c.Set("principal", principal)
		c.Set("user", user)
		c.Set("user_id", claims.UserID)
		c.Set("tenant_id", principal.TenantID)
		c.Set("username", claims.Username)
		c.Set("claims", claims)

		c.Next()
	}
}

// RequirePermission 要求特定权限
func (m *AuthMiddleware) RequirePermission(permissionCode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		decision := authz.GetEngine().Authorize(principal, permissionCode, principal.TenantID)
		if !decision.Allowed {
			m.respondDeny(c, principal, decision)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireOwnership 要求是资源归属人（或持有.all权限）
// 加载的资源会挂到上下文的 "resource" 上，下游处理器不用二次查询
func (m *AuthMiddleware) RequireOwnership(resourceType authz.ResourceType, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		resourceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			response.BadRequest(c, "资源ID格式错误")
			c.Abort()
			return
		}

		result, err := authz.GetEngine().CheckOwnership(principal, resourceType, uint(resourceID), action)
		if err != nil {
			response.ServerError(c, "归属检查失败")
			c.Abort()
			return
		}

		switch result.Outcome {
		case authz.OwnershipAllowed:
			c.Set("resource", result.Resource)
			c.Next()
		case authz.OwnershipNotFound:
			// 跨租户和真实不存在返回同样的结果
			response.NotFound(c, "资源不存在")
			c.Abort()
		default:
			m.respondDeny(c, principal, result.Decision)
			c.Abort()
		}
	}
}

// RequireRoleLevel 要求角色层级不低于指定门槛
func (m *AuthMiddleware) RequireRoleLevel(minLevel int) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		decision := authz.GetEngine().CheckLevel(principal, minLevel)
		if !decision.Allowed {
			response.Forbidden(c, "角色层级不足")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireSuperAdmin 要求平台超级管理员
func (m *AuthMiddleware) RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		if !principal.IsSuperAdmin {
			response.Forbidden(c, "需要平台管理员权限")
			c.Abort()
			return
		}

		c.Next()
	}
}

// respondDeny 把决策结果映射为响应
// 租户不匹配对外必须和NotFound不可区分，不能暴露跨租户资源是否存在
func (m *AuthMiddleware) respondDeny(c *gin.Context, principal *authz.Principal, decision authz.Decision) {
	switch decision.Reason {
	case authz.ReasonUnauthenticated:
		response.Unauthorized(c, "请先登录")
	case authz.ReasonTenantMismatch:
		response.NotFound(c, "资源不存在")
	case authz.ReasonPermissionDenied:
		response.ForbiddenPermission(c, decision.RequiredPermission, principal.RoleName)
	default:
		response.Forbidden(c, "权限不足")
	}
}

// CombineMiddleware 组合中间件（登录 + 权限）
func (m *AuthMiddleware) CombineMiddleware(permissionCode string) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.RequireLogin(),
		m.RequirePermission(permissionCode),
	}
}
