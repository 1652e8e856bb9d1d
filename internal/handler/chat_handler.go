package handler

import (
	"net/http"

	"github.com/desejolivre/chat-backend/internal/common"
	"github.com/desejolivre/chat-backend/internal/domain"
	"github.com/desejolivre/chat-backend/internal/middleware"
	"github.com/desejolivre/chat-backend/internal/service"
	"github.com/desejolivre/chat-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// ChatHandler handles chat HTTP requests
type ChatHandler struct {
	service service.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(service service.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// ListConversations handles GET /conversations
// @Summary List the caller's active conversations
// @Tags chat
// @Produce json
// @Param page query int false "Page"
// @Param per_page query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /conversations [get]
func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID := middleware.GetUserID(c)

	page := ginutil.QueryInt(c, "page", 1)
	perPage := ginutil.QueryInt(c, "per_page", 20)

	conversations, meta, err := h.service.ListConversations(c.Request.Context(), userID, page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	common.PagedResponse(c, conversations, meta)
}

// StartConversation handles POST /conversations/start
// @Summary Find or create the conversation with a companion
// @Tags chat
// @Accept json
// @Produce json
// @Param request body domain.StartConversationRequest true "Companion"
// @Success 200 {object} map[string]interface{}
// @Router /conversations/start [post]
func (h *ChatHandler) StartConversation(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ValidationErrorResponse(c, middleware.T(c, "error.validation"),
			map[string]string{"companion_id": middleware.T(c, "error.bad_request")})
		return
	}

	conversation, err := h.service.StartConversation(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, conversation)
}

// SendMessage handles POST /conversations/:id/messages
// @Summary Send a message in a conversation
// @Tags chat
// @Accept json
// @Produce json
// @Param id path int true "Conversation ID"
// @Param request body domain.SendMessageRequest true "Message"
// @Success 200 {object} map[string]interface{}
// @Router /conversations/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID := middleware.GetUserID(c)

	conversationID, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusNotFound, middleware.T(c, "chat.conversation_not_found"))
		return
	}

	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ValidationErrorResponse(c, middleware.T(c, "error.validation"),
			map[string]string{"content": middleware.T(c, "chat.content_required")})
		return
	}

	message, alertCount, err := h.service.SendMessage(c.Request.Context(), userID, conversationID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":            message,
		"security_alerts": alertCount,
	})
}

// ListMessages handles GET /conversations/:id/messages
// @Summary List messages in a conversation (marks them read)
// @Tags chat
// @Produce json
// @Param id path int true "Conversation ID"
// @Param page query int false "Page"
// @Param per_page query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /conversations/{id}/messages [get]
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID := middleware.GetUserID(c)

	conversationID, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusNotFound, middleware.T(c, "chat.conversation_not_found"))
		return
	}

	page := ginutil.QueryInt(c, "page", 1)
	perPage := ginutil.QueryInt(c, "per_page", 50)

	messages, meta, err := h.service.ListMessages(c.Request.Context(), userID, conversationID, page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	common.PagedResponse(c, messages, meta)
}

// MarkAsRead handles POST /conversations/:id/read
// @Summary Mark all messages from the other participant as read
// @Tags chat
// @Produce json
// @Param id path int true "Conversation ID"
// @Success 200 {object} map[string]interface{}
// @Router /conversations/{id}/read [post]
func (h *ChatHandler) MarkAsRead(c *gin.Context) {
	userID := middleware.GetUserID(c)

	conversationID, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusNotFound, middleware.T(c, "chat.conversation_not_found"))
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), userID, conversationID); err != nil {
		respondError(c, err)
		return
	}

	common.MessageResponse(c, middleware.T(c, "chat.marked_read"))
}

// RequestService handles POST /conversations/request-service
// @Summary Request a companion service via chat
// @Tags chat
// @Accept json
// @Produce json
// @Param request body domain.RequestServiceRequest true "Service request"
// @Success 200 {object} map[string]interface{}
// @Router /conversations/request-service [post]
func (h *ChatHandler) RequestService(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.RequestServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ValidationErrorResponse(c, middleware.T(c, "error.validation"),
			map[string]string{"service_id": middleware.T(c, "error.bad_request")})
		return
	}

	message, serviceInfo, err := h.service.RequestService(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    message,
		"service": serviceInfo,
	})
}

// Stats handles GET /conversations/stats
// @Summary Per-user chat counters
// @Tags chat
// @Produce json
// @Success 200 {object} domain.ChatStatsResponse
// @Router /conversations/stats [get]
func (h *ChatHandler) Stats(c *gin.Context) {
	userID := middleware.GetUserID(c)

	stats, err := h.service.Stats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, stats)
}

// ResolveAlert handles POST /alerts/:id/resolve
// @Summary Resolve a security alert (moderators)
// @Tags chat
// @Produce json
// @Param id path int true "Alert ID"
// @Success 200 {object} map[string]interface{}
// @Router /alerts/{id}/resolve [post]
func (h *ChatHandler) ResolveAlert(c *gin.Context) {
	userID := middleware.GetUserID(c)

	alertID, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusNotFound, middleware.T(c, "alert.not_found"))
		return
	}

	if err := h.service.ResolveAlert(c.Request.Context(), userID, alertID); err != nil {
		respondError(c, err)
		return
	}

	common.MessageResponse(c, middleware.T(c, "alert.resolved"))
}
