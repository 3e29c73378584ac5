package middleware

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const requestInfoKey = contextKey("request_info")

// RequestInfoMiddleware records the client address, URL and user agent in
// the request context for audit records.
func RequestInfoMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		info := domain.RequestContext{
			IPAddress: c.ClientIP(),
			URL:       c.Request.URL.String(),
			UserAgent: c.Request.UserAgent(),
		}
		c.Request = c.Request.WithContext(WithRequestContext(c.Request.Context(), info))
		c.Next()
	}
}

// WithRequestContext returns a copy of ctx carrying info.
func WithRequestContext(ctx context.Context, info domain.RequestContext) context.Context {
	return context.WithValue(ctx, requestInfoKey, info)
}

// GetRequestContext returns the request information stored in ctx. Outside an
// HTTP request the zero value is returned.
func GetRequestContext(ctx context.Context) domain.RequestContext {
	info, _ := ctx.Value(requestInfoKey).(domain.RequestContext)
	return info
}
