package server

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "apigee-gateway/errors"
	"apigee-gateway/logger"
)

const requestIDKey = "request_id"

// RequestID injects a unique X-Request-Id header into every
// request/response pair, honoring one supplied by the client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

// Recovery recovers from handler panics, logs the stack, and responds
// with the standard error envelope.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Panic recovered", map[string]interface{}{
					"error":     fmt.Sprintf("%v", r),
					"stack":     string(debug.Stack()),
					"path":      c.Request.URL.Path,
					"method":    c.Request.Method,
					"client_ip": c.ClientIP(),
				})
				err := apperrors.Unknown(fmt.Errorf("%v", r)).
					WithCorrelationID(c.GetString(requestIDKey))
				c.AbortWithStatusJSON(err.Status, err.ToResponse())
			}
		}()
		c.Next()
	}
}

// RequestLogger logs every request with method, path, status, and
// latency. Health probes are skipped to keep the log usable.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isHealthEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}

		fields := map[string]interface{}{
			"method":               c.Request.Method,
			"path":                 path,
			"status":               status,
			"duration_ms":          time.Since(start).Milliseconds(),
			"client":               c.ClientIP(),
			logger.FieldRequestID: c.GetString(requestIDKey),
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("Request completed", fields)
		case status >= http.StatusBadRequest:
			log.Warn("Request completed", fields)
		default:
			log.Debug("Request completed", fields)
		}
	}
}

func isHealthEndpoint(path string) bool {
	switch path {
	case "/health", "/alive", "/ready":
		return true
	}
	return false
}
