package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/phlebotomy-portal/pkg/middleware/requestid"
)

// Audit logs every completed mutation with the acting user.
func Audit(logger *zap.Logger, action string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("audit")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("action", action),
			zap.String("path", c.FullPath()),
			zap.String("resource_id", c.Param("id")),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", requestid.Value(c)),
			zap.String("client_ip", c.ClientIP()),
		}
		if session, ok := CurrentSession(c); ok {
			fields = append(fields, zap.String("user_id", session.UserID), zap.String("role", string(session.Role)))
		}

		if c.Writer.Status() >= 400 {
			logger.Warn("mutation rejected", fields...)
			return
		}
		logger.Info("mutation applied", fields...)
	}
}
