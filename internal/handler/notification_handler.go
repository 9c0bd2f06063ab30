package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conceptlens/conceptlens-backend/internal/model"
	"github.com/conceptlens/conceptlens-backend/internal/response"
	"github.com/conceptlens/conceptlens-backend/internal/service"
)

// NotificationHandler serves the inbox REST surface.
type NotificationHandler struct {
	notifService *service.NotificationService
}

func NewNotificationHandler(notifService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

// List godoc
// GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	notifications, err := h.notifService.List(c.Request.Context(), userID)
	if err != nil {
		failFromService(c, err)
		return
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	response.Success(c, http.StatusOK, gin.H{"notifications": notifications})
}

// UnreadCount godoc
// GET /api/v1/notifications/unread
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	count, err := h.notifService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread": count})
}

// MarkRead godoc
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.notifService.MarkRead(c.Request.Context(), id, userID); err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "notification marked as read"})
}
