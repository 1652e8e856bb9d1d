package migration

import (
	"github.com/desejolivre/chat-backend/internal/domain"
	"gorm.io/gorm"
)

// Run auto-migrates the tables owned by the chat subsystem.
// users and companion_services belong to other services and are never
// migrated here.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Conversation{},
		&domain.Message{},
		&domain.SecurityAlert{},
		&domain.Notification{},
	)
}
