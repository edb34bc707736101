package middleware

import (
	"context"

	"github.com/flexcart/flexcart/internal/types"
	"github.com/gin-gonic/gin"
)

// ContextMiddleware copies the request-scoped identifiers from headers into
// the request context so downstream code never touches gin directly.
func ContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		tenantID := c.GetHeader("X-Tenant-ID")
		if tenantID == "" {
			tenantID = types.DefaultTenantID
		}
		ctx = types.SetTenantID(ctx, tenantID)

		if environmentID := c.GetHeader("X-Environment-ID"); environmentID != "" {
			ctx = types.SetEnvironmentID(ctx, environmentID)
		}

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = types.GenerateUUID()
		}
		ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
		c.Header("X-Request-ID", requestID)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
