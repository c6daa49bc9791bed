package monitoring

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware that records every request through
// RecordAPICall. The raw URL path is used so UUID segments are normalized
// by the registry rather than leaking one series per resource id.
func Middleware(registry *Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		registry.RecordAPICall(path, method, c.Writer.Status(), time.Since(start))
	}
}
