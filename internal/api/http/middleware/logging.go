package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prepmate/prepmate-server/internal/logger"
)

// Logging logs HTTP requests and tags each one with a correlation id.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, status and duration for each request. The
// request id is echoed in the X-Request-ID response header. Authorization
// headers and request bodies are never logged.
func (l *Logging) Handle(c *gin.Context) {
	start := time.Now()
	requestID := uuid.NewString()
	c.Writer.Header().Set("X-Request-ID", requestID)

	l.logger.Info("HTTP request started",
		"request_id", requestID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path)

	c.Next()

	duration := time.Since(start)

	l.logger.Info("HTTP request completed",
		"request_id", requestID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration_ms", duration.Milliseconds())
}
