package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
)

type notificationService interface {
	List(ctx context.Context, sessionID string) ([]models.Notification, error)
	DeleteAll(ctx context.Context, sessionID string) (string, error)
}

// NotificationHandler exposes the notification inbox.
type NotificationHandler struct {
	service notificationService
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(service notificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List godoc
// @Summary List notifications
// @Description Unread notifications are marked read in the background after they are shown.
// @Tags Notifications
// @Produce json
// @Produce html
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), sessionID(c))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "notifications.html", "Notifications", items, nil)
}

// DeleteAll godoc
// @Summary Delete all notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notifications/clear [post]
func (h *NotificationHandler) DeleteAll(c *gin.Context) {
	msg, err := h.service.DeleteAll(c.Request.Context(), sessionID(c))
	if err != nil {
		rejected(c, "/notifications", err)
		return
	}
	if msg == "" {
		msg = "Notifications deleted"
	}
	done(c, "/notifications", msg, nil)
}
