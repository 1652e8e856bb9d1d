package handler

import (
	"errors"
	"net/http"

	"github.com/desejolivre/chat-backend/internal/common"
	"github.com/desejolivre/chat-backend/internal/domain"
	"github.com/desejolivre/chat-backend/internal/middleware"
	"github.com/desejolivre/chat-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// respondError translates service errors into HTTP responses.
// Expected conditions map to 403/404/422 with a localized message; anything
// else is a persistence-layer failure surfaced as a generic 500.
func respondError(c *gin.Context, err error) {
	var vErr *common.ValidationError
	if errors.As(err, &vErr) {
		fields := make(map[string]string, len(vErr.Fields))
		for field, key := range vErr.Fields {
			fields[field] = translateFieldError(c, key)
		}
		common.ValidationErrorResponse(c, middleware.T(c, "error.validation"), fields)
		return
	}

	switch {
	case errors.Is(err, common.ErrConversationNotFound):
		common.ErrorResponse(c, http.StatusNotFound, middleware.T(c, "chat.conversation_not_found"))
	case errors.Is(err, common.ErrCompanionNotFound):
		common.ErrorResponse(c, http.StatusNotFound, middleware.T(c, "chat.companion_not_found"))
	case errors.Is(err, common.ErrServiceNotFound):
		common.ErrorResponse(c, http.StatusNotFound, middleware.T(c, "chat.service_not_found"))
	case errors.Is(err, common.ErrAlertNotFound):
		common.ErrorResponse(c, http.StatusNotFound, middleware.T(c, "alert.not_found"))
	case errors.Is(err, common.ErrNotificationNotFound):
		common.ErrorResponse(c, http.StatusNotFound, middleware.T(c, "notification.not_found"))
	case errors.Is(err, common.ErrNotFound), errors.Is(err, common.ErrUserNotFound):
		common.ErrorResponse(c, http.StatusNotFound, middleware.T(c, "error.not_found"))
	case errors.Is(err, common.ErrNotParticipant):
		common.ErrorResponse(c, http.StatusForbidden, middleware.T(c, "chat.not_participant"))
	case errors.Is(err, common.ErrInvalidParticipant):
		common.ErrorResponse(c, http.StatusForbidden, middleware.T(c, "chat.only_clients_start"))
	case errors.Is(err, common.ErrOnlyClientsRequest):
		common.ErrorResponse(c, http.StatusForbidden, middleware.T(c, "chat.only_clients_request"))
	case errors.Is(err, common.ErrConversationInactive):
		common.ErrorResponse(c, http.StatusForbidden, middleware.T(c, "chat.send_forbidden"))
	case errors.Is(err, common.ErrNotModerator):
		common.ErrorResponse(c, http.StatusForbidden, middleware.T(c, "alert.admin_only"))
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, http.StatusForbidden, middleware.T(c, "error.forbidden"))
	case errors.Is(err, common.ErrUnauthorized):
		common.ErrorResponse(c, http.StatusUnauthorized, middleware.T(c, "error.unauthorized"))
	default:
		logger.GetLogger().Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Msg("unhandled service error")
		common.ErrorResponse(c, http.StatusInternalServerError, middleware.T(c, "error.internal"))
	}
}

func translateFieldError(c *gin.Context, key string) string {
	if key == "chat.content_too_long" {
		return middleware.T(c, key, domain.MaxMessageLength)
	}
	return middleware.T(c, key)
}
