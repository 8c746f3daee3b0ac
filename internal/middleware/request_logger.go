package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vecindia/condominio-api/pkg/logger"
)

// RequestLogger emits one structured log line per request, leveled by the
// response status. Health probes are not logged.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fullPath := c.Request.URL.Path
		if fullPath == "/api/v1/health" {
			return
		}
		if query := c.Request.URL.RawQuery; query != "" {
			fullPath += "?" + query
		}

		status := c.Writer.Status()
		attrs := []any{
			slog.Int("status", status),
			slog.String("method", c.Request.Method),
			slog.String("path", fullPath),
			slog.Duration("latency", time.Since(start)),
			slog.String("ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			attrs = append(attrs, slog.String("error", errs))
		}
		if userID, ok := c.Get("userID"); ok {
			attrs = append(attrs, slog.Any("user_id", userID))
		}

		switch {
		case status >= 500:
			logger.Error("request", attrs...)
		case status >= 400:
			logger.Warn("request", attrs...)
		default:
			logger.Info("request", attrs...)
		}
	}
}
