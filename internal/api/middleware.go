package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDMiddleware keeps an incoming X-Request-ID or mints a uuid, and
// echoes it back so page reloads can be matched to log lines.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(RequestIDHeaderKey))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeaderKey, requestID)
		c.Set(RequestIDContextKey, requestID)
		c.Next()
	}
}

// accessLogMiddleware writes one line per request in the same [LEVEL] shape
// as the rest of the service. gin's Path includes the query, so the
// dashboard selections of a slow refresh show up in the line.
func accessLogMiddleware() gin.HandlerFunc {
	return gin.LoggerWithFormatter(accessLogLine)
}

func accessLogLine(p gin.LogFormatterParams) string {
	level := "INFO"
	switch {
	case p.StatusCode >= http.StatusInternalServerError:
		level = "ERROR"
	case p.StatusCode >= http.StatusBadRequest:
		level = "WARN"
	}
	line := fmt.Sprintf("%s [%s] %s %s %d %v request_id=%v",
		p.TimeStamp.Format("2006/01/02 15:04:05"),
		level,
		p.Method,
		p.Path,
		p.StatusCode,
		p.Latency.Round(time.Millisecond),
		p.Keys[RequestIDContextKey],
	)
	if p.ErrorMessage != "" {
		line += " err=" + strings.TrimSpace(p.ErrorMessage)
	}
	return line + "\n"
}

// corsMiddleware allows read-only cross-origin use of the JSON views.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeaderKey)
		c.Header("Access-Control-Expose-Headers", RequestIDHeaderKey)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
