package repository

import (
	"errors"
	"time"

	"github.com/desejolivre/chat-backend/internal/common"
	"github.com/desejolivre/chat-backend/internal/domain"
	"gorm.io/gorm"
)

// ConversationRepository handles conversation data operations
type ConversationRepository interface {
	FindByID(id int64) (*domain.Conversation, error)
	FindByPair(clientID, companionID int64) (*domain.Conversation, error)
	Create(conversation *domain.Conversation) error
	TouchActivity(id int64, at time.Time) error
	ListForUser(userID int64, status string, offset, limit int) ([]*domain.Conversation, int64, error)
	CountForUser(userID int64, status string) (int64, error)
}

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// FindByID returns a conversation by ID, or nil if absent
func (r *conversationRepository) FindByID(id int64) (*domain.Conversation, error) {
	var conversation domain.Conversation
	err := r.db.Where("id = ?", id).First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conversation, nil
}

// FindByPair returns the conversation for a (client, companion) pair, or nil if absent
func (r *conversationRepository) FindByPair(clientID, companionID int64) (*domain.Conversation, error) {
	var conversation domain.Conversation
	err := r.db.Where("client_id = ? AND companion_id = ?", clientID, companionID).
		First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conversation, nil
}

// Create inserts a new conversation
func (r *conversationRepository) Create(conversation *domain.Conversation) error {
	return r.db.Create(conversation).Error
}

// TouchActivity sets last_message_at on a conversation.
// Fails with the not-found sentinel when the conversation does not exist.
func (r *conversationRepository) TouchActivity(id int64, at time.Time) error {
	res := r.db.Model(&domain.Conversation{}).
		Where("id = ?", id).
		Update("last_message_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrConversationNotFound
	}
	return nil
}

// ListForUser returns paginated conversations where the user is either
// participant, newest activity first, conversations without messages last
func (r *conversationRepository) ListForUser(userID int64, status string, offset, limit int) ([]*domain.Conversation, int64, error) {
	var conversations []*domain.Conversation
	var total int64

	query := r.db.Model(&domain.Conversation{}).
		Where("(client_id = ? OR companion_id = ?)", userID, userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("last_message_at IS NULL, last_message_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&conversations).Error; err != nil {
		return nil, 0, err
	}

	return conversations, total, nil
}

// CountForUser counts conversations where the user is either participant
func (r *conversationRepository) CountForUser(userID int64, status string) (int64, error) {
	var count int64
	query := r.db.Model(&domain.Conversation{}).
		Where("(client_id = ? OR companion_id = ?)", userID, userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}
