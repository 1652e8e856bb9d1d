package service

import (
	"context"

	"github.com/desejolivre/chat-backend/internal/common"
	"github.com/desejolivre/chat-backend/internal/domain"
	"github.com/desejolivre/chat-backend/internal/repository"
	"github.com/desejolivre/chat-backend/pkg/events"
	"github.com/desejolivre/chat-backend/pkg/logger"
)

// Notifier delivers a one-line alert to a user. The chat orchestrator only
// depends on this contract; delivery details live behind it.
type Notifier interface {
	Notify(ctx context.Context, userID int64, notifType, title, body string, data domain.NotificationData) error
}

// NotificationService handles notification business logic
type NotificationService interface {
	Notifier
	List(userID int64, page, limit int) ([]*domain.NotificationResponse, *common.Meta, error)
	UnreadCount(userID int64) (int64, error)
	MarkAsRead(userID, notificationID int64) error
}

type notificationService struct {
	repo      repository.NotificationRepository
	publisher events.Publisher
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo repository.NotificationRepository, publisher events.Publisher) NotificationService {
	return &notificationService{repo: repo, publisher: publisher}
}

// Notify persists a notification and publishes a notification.created event
// for the realtime gateway. Publish failures do not fail the notification;
// the durable row is the source of truth.
func (s *notificationService) Notify(ctx context.Context, userID int64, notifType, title, body string, data domain.NotificationData) error {
	notification := &domain.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   data,
	}

	if err := s.repo.Create(notification); err != nil {
		return err
	}

	envelope, err := events.NewEnvelope("notification.created", notification.ToResponse())
	if err == nil {
		err = s.publisher.Publish(ctx, "notification.created", envelope)
	}
	if err != nil {
		logger.GetLogger().Warn().
			Err(err).
			Int64("user_id", userID).
			Str("type", notifType).
			Msg("failed to publish notification event")
	}

	return nil
}

// List returns paginated notifications for a user
func (s *notificationService) List(userID int64, page, limit int) ([]*domain.NotificationResponse, *common.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	offset := (page - 1) * limit
	notifications, total, err := s.repo.ListForUser(userID, offset, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*domain.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = n.ToResponse()
	}

	return responses, common.NewMeta(page, limit, total), nil
}

// UnreadCount returns the unread notification count for a user
func (s *notificationService) UnreadCount(userID int64) (int64, error) {
	return s.repo.UnreadCount(userID)
}

// MarkAsRead marks a notification as read after an ownership check
func (s *notificationService) MarkAsRead(userID, notificationID int64) error {
	n, err := s.repo.FindByID(notificationID)
	if err != nil {
		return err
	}
	if n == nil {
		return common.ErrNotificationNotFound
	}
	if n.UserID != userID {
		return common.ErrForbidden
	}
	return s.repo.MarkAsRead(notificationID)
}
