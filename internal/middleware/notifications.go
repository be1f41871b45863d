package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uks-api/internal/service"
)

// Notifications attaches a per-request collector so handlers can echo the
// notifications raised while serving the request.
func Notifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _ := service.WithNotificationCollector(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
