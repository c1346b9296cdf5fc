package logger

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-Id"
	contextKey      = "request_logger"
)

// GinMiddleware assigns every request an ID, echoes it on the response, and
// emits one access log line per request.
func GinMiddleware(log *zap.Logger) gin.HandlerFunc {
	access := log.Named("http")
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)
		c.Set(contextKey, access.With(zap.String("request_id", requestID)))

		start := time.Now()
		c.Next()

		access.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// FromGinContext returns the request-scoped logger, falling back to the
// global logger when the middleware did not run.
func FromGinContext(c *gin.Context) *zap.Logger {
	if value, ok := c.Get(contextKey); ok {
		if log, ok := value.(*zap.Logger); ok {
			return log
		}
	}
	return zap.L()
}
