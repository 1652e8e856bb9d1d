package handler

import (
	"net/http"

	"github.com/desejolivre/chat-backend/internal/common"
	"github.com/desejolivre/chat-backend/internal/middleware"
	"github.com/desejolivre/chat-backend/internal/service"
	"github.com/desejolivre/chat-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	service service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List handles GET /notifications
// @Summary List the caller's notifications
// @Tags notifications
// @Produce json
// @Param page query int false "Page"
// @Param per_page query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	page := ginutil.QueryInt(c, "page", 1)
	perPage := ginutil.QueryInt(c, "per_page", 20)

	notifications, meta, err := h.service.List(userID, page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	common.PagedResponse(c, notifications, meta)
}

// UnreadCount handles GET /notifications/unread-count
// @Summary Unread notification count
// @Tags notifications
// @Produce json
// @Success 200 {object} domain.NotificationSummaryResponse
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := middleware.GetUserID(c)

	count, err := h.service.UnreadCount(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"total_unread": count})
}

// MarkAsRead handles POST /notifications/:id/read
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} map[string]interface{}
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID := middleware.GetUserID(c)

	notificationID, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusNotFound, middleware.T(c, "notification.not_found"))
		return
	}

	if err := h.service.MarkAsRead(userID, notificationID); err != nil {
		respondError(c, err)
		return
	}

	common.MessageResponse(c, middleware.T(c, "notification.marked_read"))
}
