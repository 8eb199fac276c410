package handlers

import (
	"net/http"

	"fundihub/models"
	"fundihub/services/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler exposes the notification read endpoints.
type NotificationHandler struct {
	Service notification.NotificationService
	Logger  *zap.Logger
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(service notification.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{Service: service, Logger: logger}
}

// ListHandler handles GET /api/notifications, returning the requester's own
// notifications.
func (h *NotificationHandler) ListHandler(c *gin.Context) {
	requesterID, requesterRole, ok := requesterIdentity(c)
	if !ok {
		return
	}

	notifications, err := h.Service.ListForRecipient(c.Request.Context(), requesterID, requesterRole)
	if err != nil {
		h.Logger.Error("failed to list notifications", zap.String("recipient", requesterID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkReadHandler handles PATCH /api/notifications/:id/read.
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	requesterID, _, ok := requesterIdentity(c)
	if !ok {
		return
	}

	id := c.Param("id")
	n, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if n == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	if n.Recipient != requesterID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your notification"})
		return
	}

	if err := h.Service.MarkRead(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked read"})
}
