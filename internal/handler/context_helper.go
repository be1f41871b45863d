package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uks-api/internal/middleware"
	"github.com/noah-isme/uks-api/internal/models"
	"github.com/noah-isme/uks-api/internal/service"
	appErrors "github.com/noah-isme/uks-api/pkg/errors"
	"github.com/noah-isme/uks-api/pkg/response"
)

// actorFromContext returns the session identity, writing 401 when there is none.
func actorFromContext(c *gin.Context) (models.UserInfo, bool) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return models.UserInfo{}, false
	}
	return *identity, true
}

// notificationMeta echoes the notifications raised while serving the request.
func notificationMeta(c *gin.Context) map[string]interface{} {
	items := service.NotificationCollectorFrom(c.Request.Context()).Items()
	if len(items) == 0 {
		return nil
	}
	return map[string]interface{}{"notifications": items}
}
