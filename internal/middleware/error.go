package middleware

import (
	"bizhub/pkg/logger"
	"bizhub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorHandler 兜底panic恢复
// 业务错误都走response包的结构化返回，这里只拦截漏到最外层的panic
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.GetLogger().WithFields(logrus.Fields{
					"method": c.Request.Method,
					"path":   c.Request.URL.Path,
				}).Errorf("panic recovered: %v", r)
				response.ServerError(c, "服务器内部错误")
				c.Abort()
			}
		}()

		c.Next()
	}
}
