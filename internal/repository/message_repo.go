package repository

import (
	"time"

	"github.com/desejolivre/chat-backend/internal/domain"
	"gorm.io/gorm"
)

// MessageRepository handles chat message data operations
type MessageRepository interface {
	Create(message *domain.Message) error
	CreateAndTouchConversation(message *domain.Message) error
	ListByConversation(conversationID int64, offset, limit int) ([]*domain.Message, int64, error)
	LatestByConversation(conversationID int64) (*domain.Message, error)
	MarkReadBulk(conversationID, readerID int64, at time.Time) error
	UnreadCount(conversationID, readerID int64) (int64, error)
	UnreadCountForUser(userID int64) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create inserts a new message
func (r *messageRepository) Create(message *domain.Message) error {
	return r.db.Create(message).Error
}

// CreateAndTouchConversation inserts a message and bumps the conversation's
// last_message_at in one transaction, so a reader never observes a stale
// activity timestamp being overwritten by a concurrent send.
func (r *messageRepository) CreateAndTouchConversation(message *domain.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("last_message_at", message.CreatedAt).Error
	})
}

// ListByConversation returns paginated messages, newest first.
// Ties on created_at are broken by id so ordering is stable.
func (r *messageRepository) ListByConversation(conversationID int64, offset, limit int) ([]*domain.Message, int64, error) {
	var messages []*domain.Message
	var total int64

	if err := r.db.Model(&domain.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// LatestByConversation returns the most recent message, or nil if none exists
func (r *messageRepository) LatestByConversation(conversationID int64) (*domain.Message, error) {
	var messages []*domain.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}
	return messages[0], nil
}

// notSentBy matches messages the given user did not author.
// System messages count as "not sent by" every user.
func notSentBy(db *gorm.DB, userID int64) *gorm.DB {
	return db.Where("(sender_kind <> ? OR sender_id <> ?)", domain.SenderUser, userID)
}

// MarkReadBulk marks all unread messages not sent by the reader as read.
// Idempotent: already-read messages keep their original read_at.
func (r *messageRepository) MarkReadBulk(conversationID, readerID int64, at time.Time) error {
	return notSentBy(r.db.Model(&domain.Message{}), readerID).
		Where("conversation_id = ? AND is_read = ?", conversationID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": at,
		}).Error
}

// UnreadCount counts unread messages not sent by the reader in one conversation
func (r *messageRepository) UnreadCount(conversationID, readerID int64) (int64, error) {
	var count int64
	err := notSentBy(r.db.Model(&domain.Message{}), readerID).
		Where("conversation_id = ? AND is_read = ?", conversationID, false).
		Count(&count).Error
	return count, err
}

// UnreadCountForUser counts unread messages across every conversation the
// user participates in
func (r *messageRepository) UnreadCountForUser(userID int64) (int64, error) {
	var count int64
	err := notSentBy(r.db.Model(&domain.Message{}), userID).
		Joins("JOIN chat_conversations ON chat_conversations.id = chat_messages.conversation_id").
		Where("(chat_conversations.client_id = ? OR chat_conversations.companion_id = ?)", userID, userID).
		Where("chat_messages.is_read = ?", false).
		Count(&count).Error
	return count, err
}
