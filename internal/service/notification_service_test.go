package service

import (
	"context"
	"errors"
	"testing"

	"github.com/desejolivre/chat-backend/internal/common"
	"github.com/desejolivre/chat-backend/internal/domain"
	"github.com/desejolivre/chat-backend/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(notification *domain.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

func (m *mockNotificationRepo) FindByID(id int64) (*domain.Notification, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *mockNotificationRepo) ListForUser(userID int64, offset, limit int) ([]*domain.Notification, int64, error) {
	args := m.Called(userID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *mockNotificationRepo) UnreadCount(userID int64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) MarkAsRead(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, key string, msg events.Envelope) error {
	args := m.Called(ctx, key, msg)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestNotify_PersistsAndPublishes(t *testing.T) {
	repo := new(mockNotificationRepo)
	pub := new(mockPublisher)
	svc := NewNotificationService(repo, pub)

	repo.On("Create", mock.AnythingOfType("*domain.Notification")).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Notification).ID = 42
	}).Return(nil)
	pub.On("Publish", mock.Anything, "notification.created", mock.AnythingOfType("events.Envelope")).Return(nil)

	err := svc.Notify(context.Background(), 2, domain.NotificationChatMessage,
		"Nova mensagem no chat", "oi", domain.NotificationData{"conversation_id": int64(10)})

	assert.NoError(t, err)
	repo.AssertCalled(t, "Create", mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 2 && n.Type == domain.NotificationChatMessage && !n.IsRead
	}))
	pub.AssertExpectations(t)
}

func TestNotify_PublishFailureIsSwallowed(t *testing.T) {
	repo := new(mockNotificationRepo)
	pub := new(mockPublisher)
	svc := NewNotificationService(repo, pub)

	repo.On("Create", mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	err := svc.Notify(context.Background(), 2, domain.NotificationChatMessage, "t", "b", nil)

	assert.NoError(t, err)
}

func TestNotify_CreateFailureFails(t *testing.T) {
	repo := new(mockNotificationRepo)
	pub := new(mockPublisher)
	svc := NewNotificationService(repo, pub)

	repo.On("Create", mock.Anything).Return(errors.New("db down"))

	err := svc.Notify(context.Background(), 2, domain.NotificationChatMessage, "t", "b", nil)

	assert.Error(t, err)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationList_ClampsPaging(t *testing.T) {
	repo := new(mockNotificationRepo)
	svc := NewNotificationService(repo, new(mockPublisher))

	repo.On("ListForUser", int64(2), 0, 20).Return([]*domain.Notification{
		{ID: 1, UserID: 2, Type: domain.NotificationChatMessage, Title: "t"},
	}, int64(1), nil)

	responses, meta, err := svc.List(2, 0, 500)

	assert.NoError(t, err)
	assert.Len(t, responses, 1)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 20, meta.PerPage)
}

func TestNotificationMarkAsRead_OwnershipCheck(t *testing.T) {
	repo := new(mockNotificationRepo)
	svc := NewNotificationService(repo, new(mockPublisher))

	repo.On("FindByID", int64(5)).Return(&domain.Notification{ID: 5, UserID: 9}, nil)

	err := svc.MarkAsRead(2, 5)

	assert.ErrorIs(t, err, common.ErrForbidden)
	repo.AssertNotCalled(t, "MarkAsRead", mock.Anything)
}

func TestNotificationMarkAsRead_NotFound(t *testing.T) {
	repo := new(mockNotificationRepo)
	svc := NewNotificationService(repo, new(mockPublisher))

	repo.On("FindByID", int64(5)).Return(nil, nil)

	err := svc.MarkAsRead(2, 5)

	assert.ErrorIs(t, err, common.ErrNotificationNotFound)
}

func TestNotificationMarkAsRead_Succeeds(t *testing.T) {
	repo := new(mockNotificationRepo)
	svc := NewNotificationService(repo, new(mockPublisher))

	repo.On("FindByID", int64(5)).Return(&domain.Notification{ID: 5, UserID: 2}, nil)
	repo.On("MarkAsRead", int64(5)).Return(nil)

	assert.NoError(t, svc.MarkAsRead(2, 5))
	repo.AssertExpectations(t)
}
