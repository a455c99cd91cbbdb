package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/moldshop/erp/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RequireRole allows the request only when the authenticated user holds one
// of roles. It must run after the JWT middleware.
func RequireRole(log *zap.Logger, roles ...string) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		role := GetJWTRole(c)
		if slices.Contains(roles, role) {
			c.Next()
			return
		}

		log.Warn("Permission denied",
			zap.String("user_id", GetJWTUserID(c).String()),
			zap.String("role", role),
			zap.Strings("required_roles", roles),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeForbidden,
			"Access denied: insufficient permissions",
			GetRequestID(c),
		))
	}
}
