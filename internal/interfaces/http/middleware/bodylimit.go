package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moldshop/erp/internal/interfaces/http/dto"
)

// BodyLimit rejects requests whose declared body is larger than maxBytes and
// caps reads of undeclared bodies at the same size
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRequestTooLarge,
				"Request body exceeds maximum allowed size",
				GetRequestID(c),
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
