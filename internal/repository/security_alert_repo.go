package repository

import (
	"errors"
	"time"

	"github.com/desejolivre/chat-backend/internal/domain"
	"gorm.io/gorm"
)

// SecurityAlertRepository handles security alert data operations
type SecurityAlertRepository interface {
	Create(alert *domain.SecurityAlert) error
	FindByID(id int64) (*domain.SecurityAlert, error)
	Resolve(id int64, at time.Time) error
	CountUnresolvedForUser(userID int64) (int64, error)
	ListByConversation(conversationID int64, offset, limit int) ([]*domain.SecurityAlert, int64, error)
}

type securityAlertRepository struct {
	db *gorm.DB
}

// NewSecurityAlertRepository creates a new SecurityAlertRepository
func NewSecurityAlertRepository(db *gorm.DB) SecurityAlertRepository {
	return &securityAlertRepository{db: db}
}

// Create inserts a new unresolved alert
func (r *securityAlertRepository) Create(alert *domain.SecurityAlert) error {
	return r.db.Create(alert).Error
}

// FindByID returns an alert by ID, or nil if absent
func (r *securityAlertRepository) FindByID(id int64) (*domain.SecurityAlert, error) {
	var alert domain.SecurityAlert
	err := r.db.Where("id = ?", id).First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

// Resolve marks an alert resolved. Already-resolved alerts are left untouched
// so the original resolved_at survives repeated calls.
func (r *securityAlertRepository) Resolve(id int64, at time.Time) error {
	return r.db.Model(&domain.SecurityAlert{}).
		Where("id = ? AND is_resolved = ?", id, false).
		Updates(map[string]interface{}{
			"is_resolved": true,
			"resolved_at": at,
		}).Error
}

// CountUnresolvedForUser counts unresolved alerts across every conversation
// the user participates in
func (r *securityAlertRepository) CountUnresolvedForUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.SecurityAlert{}).
		Joins("JOIN chat_conversations ON chat_conversations.id = security_alerts.conversation_id").
		Where("(chat_conversations.client_id = ? OR chat_conversations.companion_id = ?)", userID, userID).
		Where("security_alerts.is_resolved = ?", false).
		Count(&count).Error
	return count, err
}

// ListByConversation returns paginated alerts for a conversation, newest first
func (r *securityAlertRepository) ListByConversation(conversationID int64, offset, limit int) ([]*domain.SecurityAlert, int64, error) {
	var alerts []*domain.SecurityAlert
	var total int64

	if err := r.db.Model(&domain.SecurityAlert{}).
		Where("conversation_id = ?", conversationID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&alerts).Error; err != nil {
		return nil, 0, err
	}

	return alerts, total, nil
}
