package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uks-api/internal/models"
	appErrors "github.com/noah-isme/uks-api/pkg/errors"
	"github.com/noah-isme/uks-api/pkg/response"
)

type notificationFeed interface {
	Recent(limit int) []models.Notification
}

// NotificationHandler serves the notification feed.
type NotificationHandler struct {
	feed notificationFeed
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(feed notificationFeed) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// List godoc
// @Summary Recent notifications
// @Tags Notifications
// @Produce json
// @Param limit query int false "Maximum items, newest first"
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}
	response.JSON(c, http.StatusOK, h.feed.Recent(limit))
}
