package service

import (
	"context"
	"time"

	"github.com/desejolivre/chat-backend/internal/common"
	"github.com/desejolivre/chat-backend/internal/domain"
	"github.com/desejolivre/chat-backend/internal/repository"
	"github.com/desejolivre/chat-backend/pkg/cache"
	"github.com/desejolivre/chat-backend/pkg/i18n"
	"github.com/desejolivre/chat-backend/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var securityAlertsEmitted = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "chat_security_alerts_total",
		Help: "Total number of security alerts emitted by the content scanner",
	},
	[]string{"alert_type", "severity"},
)

const (
	defaultConversationPageSize = 20
	defaultMessagePageSize      = 50
	maxPageSize                 = 100

	notificationBodyLimit = 80

	// Notification dispatch and content scanning are best-effort side
	// effects of a send; they must never stall the request.
	notifyTimeout = 2 * time.Second
)

// ChatService orchestrates conversations, messages, security scanning and
// alert emission
type ChatService interface {
	StartConversation(ctx context.Context, clientID int64, req *domain.StartConversationRequest) (*domain.ConversationResponse, error)
	ListConversations(ctx context.Context, userID int64, page, perPage int) ([]*domain.ConversationResponse, *common.Meta, error)
	SendMessage(ctx context.Context, userID, conversationID int64, req *domain.SendMessageRequest) (*domain.MessageResponse, int, error)
	ListMessages(ctx context.Context, userID, conversationID int64, page, perPage int) ([]*domain.MessageResponse, *common.Meta, error)
	MarkAsRead(ctx context.Context, userID, conversationID int64) error
	RequestService(ctx context.Context, userID int64, req *domain.RequestServiceRequest) (*domain.MessageResponse, *domain.ServiceInfo, error)
	Stats(ctx context.Context, userID int64) (*domain.ChatStatsResponse, error)
	ResolveAlert(ctx context.Context, actingUserID, alertID int64) error
}

type chatService struct {
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	alerts        repository.SecurityAlertRepository
	users         repository.UserRepository
	services      repository.CompanionServiceRepository
	scanner       *SecurityScanner
	notifier      Notifier
	cache         cache.Service
	bundle        *i18n.Bundle
}

// NewChatService creates a new ChatService
func NewChatService(
	conversations repository.ConversationRepository,
	messages repository.MessageRepository,
	alerts repository.SecurityAlertRepository,
	users repository.UserRepository,
	services repository.CompanionServiceRepository,
	scanner *SecurityScanner,
	notifier Notifier,
	cacheService cache.Service,
	bundle *i18n.Bundle,
) ChatService {
	return &chatService{
		conversations: conversations,
		messages:      messages,
		alerts:        alerts,
		users:         users,
		services:      services,
		scanner:       scanner,
		notifier:      notifier,
		cache:         cacheService,
		bundle:        bundle,
	}
}

// StartConversation finds or creates the conversation between a client and a
// companion. Only clients may initiate; the target must be an active companion.
func (s *chatService) StartConversation(ctx context.Context, clientID int64, req *domain.StartConversationRequest) (*domain.ConversationResponse, error) {
	client, err := s.loadUser(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil || !client.IsClient() {
		return nil, common.ErrInvalidParticipant
	}

	companion, err := s.loadUser(ctx, req.CompanionID)
	if err != nil {
		return nil, err
	}
	if companion == nil || !companion.IsCompanion() {
		return nil, common.ErrCompanionNotFound
	}

	conversation, err := s.conversations.FindByPair(clientID, req.CompanionID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		conversation = &domain.Conversation{
			ClientID:    clientID,
			CompanionID: req.CompanionID,
			Status:      domain.ConversationActive,
		}
		if err := s.conversations.Create(conversation); err != nil {
			return nil, err
		}
	}

	resp := conversation.ToResponse()
	resp.OtherParticipant = companion.Summary()
	return resp, nil
}

// ListConversations returns the user's active conversations, newest activity
// first, with the other participant, last message and unread count attached
func (s *chatService) ListConversations(ctx context.Context, userID int64, page, perPage int) ([]*domain.ConversationResponse, *common.Meta, error) {
	page, perPage = clampPage(page, perPage, defaultConversationPageSize)

	conversations, total, err := s.conversations.ListForUser(userID, domain.ConversationActive, (page-1)*perPage, perPage)
	if err != nil {
		return nil, nil, err
	}

	// Batch-load the other participants to avoid one lookup per conversation
	otherIDs := make([]int64, 0, len(conversations))
	for _, c := range conversations {
		otherIDs = append(otherIDs, c.OtherParticipant(userID))
	}
	participants, err := s.users.FindByIDs(otherIDs)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*domain.ConversationResponse, len(conversations))
	for i, c := range conversations {
		resp := c.ToResponse()
		if u, ok := participants[c.OtherParticipant(userID)]; ok {
			resp.OtherParticipant = u.Summary()
		}

		if last, err := s.messages.LatestByConversation(c.ID); err == nil && last != nil {
			resp.LastMessage = last.ToResponse()
		}

		resp.UnreadCount = s.unreadCount(ctx, c.ID, userID)
		responses[i] = resp
	}

	return responses, common.NewMeta(page, perPage, total), nil
}

// SendMessage runs the send pipeline: authorize, persist, touch activity,
// notify the other participant, scan the content and emit inline alerts.
// Returns the persisted message and the number of alerts raised.
func (s *chatService) SendMessage(ctx context.Context, userID, conversationID int64, req *domain.SendMessageRequest) (*domain.MessageResponse, int, error) {
	conversation, err := s.loadConversation(conversationID)
	if err != nil {
		return nil, 0, err
	}
	if !conversation.IsParticipant(userID) {
		return nil, 0, common.ErrNotParticipant
	}
	if conversation.Status != domain.ConversationActive {
		return nil, 0, common.ErrConversationInactive
	}

	messageType := req.MessageType
	if messageType == "" {
		messageType = domain.MessageText
	}
	if messageType != domain.MessageText && messageType != domain.MessageServiceRequest {
		return nil, 0, common.NewValidationError("message_type", "chat.invalid_message_type")
	}
	if len([]rune(req.Content)) > domain.MaxMessageLength {
		return nil, 0, common.NewValidationError("content", "chat.content_too_long")
	}

	message := &domain.Message{
		ConversationID: conversationID,
		SenderKind:     domain.SenderUser,
		SenderID:       userID,
		Content:        req.Content,
		MessageType:    messageType,
		CreatedAt:      time.Now(),
	}
	if err := s.messages.CreateAndTouchConversation(message); err != nil {
		return nil, 0, err
	}

	recipientID := conversation.OtherParticipant(userID)
	s.notifyRecipient(ctx, recipientID, domain.NotificationChatMessage,
		s.bundle.T(i18n.LocalePt, "notification.new_message"),
		truncate(message.Content, notificationBodyLimit),
		domain.NotificationData{"conversation_id": conversationID, "message_id": message.ID})

	alertCount := s.scanAndEmitAlerts(conversationID, userID, req.Content)

	s.invalidateCaches(ctx, conversation)

	return message.ToResponse(), alertCount, nil
}

// ListMessages returns a page of messages, newest first, and marks everything
// not sent by the caller as read before returning
func (s *chatService) ListMessages(ctx context.Context, userID, conversationID int64, page, perPage int) ([]*domain.MessageResponse, *common.Meta, error) {
	conversation, err := s.loadConversation(conversationID)
	if err != nil {
		return nil, nil, err
	}
	if !conversation.IsParticipant(userID) {
		return nil, nil, common.ErrNotParticipant
	}

	page, perPage = clampPage(page, perPage, defaultMessagePageSize)

	messages, total, err := s.messages.ListByConversation(conversationID, (page-1)*perPage, perPage)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	if err := s.messages.MarkReadBulk(conversationID, userID, now); err != nil {
		return nil, nil, err
	}

	responses := make([]*domain.MessageResponse, len(messages))
	for i, m := range messages {
		resp := m.ToResponse()
		// Reflect the bulk read that just happened
		if !m.IsFromUser(userID) && !resp.IsRead {
			resp.IsRead = true
			resp.ReadAt = &now
		}
		responses[i] = resp
	}

	s.invalidateCaches(ctx, conversation)

	return responses, common.NewMeta(page, perPage, total), nil
}

// MarkAsRead marks all messages not sent by the caller as read. Idempotent.
func (s *chatService) MarkAsRead(ctx context.Context, userID, conversationID int64) error {
	conversation, err := s.loadConversation(conversationID)
	if err != nil {
		return err
	}
	if !conversation.IsParticipant(userID) {
		return common.ErrNotParticipant
	}

	if err := s.messages.MarkReadBulk(conversationID, userID, time.Now()); err != nil {
		return err
	}

	s.invalidateCaches(ctx, conversation)
	return nil
}

// RequestService sends a service_request message carrying an immutable
// snapshot of the requested companion service
func (s *chatService) RequestService(ctx context.Context, userID int64, req *domain.RequestServiceRequest) (*domain.MessageResponse, *domain.ServiceInfo, error) {
	client, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if client == nil || !client.IsClient() {
		return nil, nil, common.ErrOnlyClientsRequest
	}

	conversation, err := s.loadConversation(req.ConversationID)
	if err != nil {
		return nil, nil, err
	}
	if !conversation.IsParticipant(userID) {
		return nil, nil, common.ErrNotParticipant
	}
	if conversation.Status != domain.ConversationActive {
		return nil, nil, common.ErrConversationInactive
	}

	companionService, err := s.services.FindByID(req.ServiceID)
	if err != nil {
		return nil, nil, err
	}
	if companionService == nil || companionService.CompanionID != conversation.CompanionID {
		return nil, nil, common.ErrServiceNotFound
	}

	content := req.Message
	if content == "" {
		content = s.bundle.T(i18n.LocalePt, "chat.service_request_default", companionService.Name)
	}
	if len([]rune(content)) > domain.MaxMessageLength {
		return nil, nil, common.NewValidationError("message", "chat.content_too_long")
	}

	snapshot := companionService.Snapshot()
	message := &domain.Message{
		ConversationID: conversation.ID,
		SenderKind:     domain.SenderUser,
		SenderID:       userID,
		Content:        content,
		MessageType:    domain.MessageServiceRequest,
		Metadata:       &domain.MessageMetadata{Service: snapshot},
		CreatedAt:      time.Now(),
	}
	if err := s.messages.CreateAndTouchConversation(message); err != nil {
		return nil, nil, err
	}

	s.notifyRecipient(ctx, conversation.CompanionID, domain.NotificationServiceRequest,
		s.bundle.T(i18n.LocalePt, "notification.service_request"),
		truncate(content, notificationBodyLimit),
		domain.NotificationData{"conversation_id": conversation.ID, "service_id": companionService.ID})

	s.scanAndEmitAlerts(conversation.ID, userID, content)

	s.invalidateCaches(ctx, conversation)

	return message.ToResponse(), snapshot, nil
}

// Stats aggregates per-user chat counters, cached for a short window
func (s *chatService) Stats(ctx context.Context, userID int64) (*domain.ChatStatsResponse, error) {
	var cached domain.ChatStatsResponse
	if err := s.cache.GetStats(ctx, userID, &cached); err == nil {
		return &cached, nil
	}

	totalConversations, err := s.conversations.CountForUser(userID, domain.ConversationActive)
	if err != nil {
		return nil, err
	}
	unreadMessages, err := s.messages.UnreadCountForUser(userID)
	if err != nil {
		return nil, err
	}
	unresolvedAlerts, err := s.alerts.CountUnresolvedForUser(userID)
	if err != nil {
		return nil, err
	}

	stats := &domain.ChatStatsResponse{
		TotalConversations: totalConversations,
		UnreadMessages:     unreadMessages,
		SecurityAlerts:     unresolvedAlerts,
	}

	if err := s.cache.SetStats(ctx, userID, stats); err != nil {
		logger.GetLogger().Warn().Err(err).Int64("user_id", userID).Msg("failed to cache chat stats")
	}

	return stats, nil
}

// ResolveAlert marks an alert resolved. Moderators only; idempotent for an
// already-resolved alert.
func (s *chatService) ResolveAlert(ctx context.Context, actingUserID, alertID int64) error {
	actor, err := s.users.FindByID(actingUserID)
	if err != nil {
		return err
	}
	if actor == nil || actor.UserType != domain.UserTypeAdmin {
		return common.ErrNotModerator
	}

	alert, err := s.alerts.FindByID(alertID)
	if err != nil {
		return err
	}
	if alert == nil {
		return common.ErrAlertNotFound
	}
	if alert.IsResolved {
		return nil
	}

	return s.alerts.Resolve(alertID, time.Now())
}

// ========================================
// Internal helpers
// ========================================

// loadUser reads a user through the short-lived directory cache.
// Role checks for moderation go to the repository directly, not through here.
func (s *chatService) loadUser(ctx context.Context, id int64) (*domain.User, error) {
	var cached domain.User
	if err := s.cache.GetUser(ctx, id, &cached); err == nil {
		return &cached, nil
	}

	user, err := s.users.FindByID(id)
	if err != nil || user == nil {
		return user, err
	}
	_ = s.cache.SetUser(ctx, id, user)
	return user, nil
}

func (s *chatService) loadConversation(id int64) (*domain.Conversation, error) {
	conversation, err := s.conversations.FindByID(id)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, common.ErrConversationNotFound
	}
	return conversation, nil
}

// notifyRecipient dispatches a notification with a bounded timeout.
// Failures are logged and swallowed; the send already succeeded.
func (s *chatService) notifyRecipient(ctx context.Context, userID int64, notifType, title, body string, data domain.NotificationData) {
	nctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	if err := s.notifier.Notify(nctx, userID, notifType, title, body, data); err != nil {
		logger.GetLogger().Warn().
			Err(err).
			Int64("recipient_id", userID).
			Str("type", notifType).
			Msg("notification dispatch failed")
	}
}

// scanAndEmitAlerts runs the scanner on content and, for each finding,
// persists a security alert plus an inline system message visible to both
// participants. Persistence failures here are logged and swallowed: the user
// message was already sent.
func (s *chatService) scanAndEmitAlerts(conversationID, senderID int64, content string) int {
	findings := s.scanner.Scan(content)

	emitted := 0
	for _, finding := range findings {
		alert := domain.NewSecurityAlert(conversationID, senderID, finding.AlertType, content)
		if err := s.alerts.Create(alert); err != nil {
			logger.GetLogger().Error().
				Err(err).
				Int64("conversation_id", conversationID).
				Str("alert_type", finding.AlertType).
				Msg("failed to persist security alert")
			continue
		}

		systemMessage := &domain.Message{
			ConversationID: conversationID,
			SenderKind:     domain.SenderSystem,
			Content:        alert.Metadata.WarningMessage,
			MessageType:    domain.MessageSecurityAlert,
			Metadata: &domain.MessageMetadata{
				Alert: &domain.AlertInfo{
					AlertID:        alert.ID,
					AlertType:      alert.AlertType,
					Severity:       alert.Severity,
					Recommendation: alert.Metadata.Recommendation,
				},
			},
			CreatedAt: time.Now(),
		}
		if err := s.messages.Create(systemMessage); err != nil {
			logger.GetLogger().Error().
				Err(err).
				Int64("conversation_id", conversationID).
				Int64("alert_id", alert.ID).
				Msg("failed to append security alert message")
			continue
		}

		securityAlertsEmitted.WithLabelValues(alert.AlertType, alert.Severity).Inc()
		emitted++
	}

	return emitted
}

func (s *chatService) unreadCount(ctx context.Context, conversationID, userID int64) int64 {
	if n, ok := s.cache.GetUnreadCount(ctx, conversationID, userID); ok {
		return n
	}
	n, err := s.messages.UnreadCount(conversationID, userID)
	if err != nil {
		logger.GetLogger().Warn().Err(err).Int64("conversation_id", conversationID).Msg("unread count query failed")
		return 0
	}
	_ = s.cache.SetUnreadCount(ctx, conversationID, userID, n)
	return n
}

func (s *chatService) invalidateCaches(ctx context.Context, conversation *domain.Conversation) {
	_ = s.cache.InvalidateUnread(ctx, conversation.ID)
	_ = s.cache.InvalidateStats(ctx, conversation.ClientID, conversation.CompanionID)
}

func clampPage(page, perPage, defaultSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > maxPageSize {
		perPage = defaultSize
	}
	return page, perPage
}

// truncate shortens s to limit runes, appending an ellipsis when cut
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
