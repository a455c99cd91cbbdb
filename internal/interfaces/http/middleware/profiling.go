package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moldshop/erp/internal/infrastructure/telemetry"
)

// Profiling labels the samples taken while a request is handled with its
// route pattern, method, resource and caller role. Place it after the JWT
// middleware so the role is known.
func Profiling() gin.HandlerFunc {
	return func(c *gin.Context) {
		telemetry.WithProfilingLabels(c.Request.Context(), profilingLabels(c), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func profilingLabels(c *gin.Context) map[string]string {
	route := c.FullPath()
	return map[string]string{
		telemetry.ProfilingLabelMethod:   c.Request.Method,
		telemetry.ProfilingLabelRoute:    route,
		telemetry.ProfilingLabelResource: resourceFromRoute(route),
		telemetry.ProfilingLabelRole:     GetJWTRole(c),
	}
}

// resourceFromRoute returns the first static segment after the api version,
// e.g. "/api/v1/molds/:id" gives "molds".
func resourceFromRoute(route string) string {
	for _, part := range strings.Split(route, "/") {
		if part == "" || part == "api" || isVersionSegment(part) || strings.HasPrefix(part, ":") {
			continue
		}
		return part
	}
	return ""
}

func isVersionSegment(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	for i := 1; i < len(segment); i++ {
		if segment[i] < '0' || segment[i] > '9' {
			return false
		}
	}
	return true
}
