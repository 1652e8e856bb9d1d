package repository

import (
	"errors"

	"github.com/desejolivre/chat-backend/internal/domain"
	"gorm.io/gorm"
)

// CompanionServiceRepository is the read-only catalog of services offered by
// companions, used to snapshot service details into chat messages
type CompanionServiceRepository interface {
	FindByID(id int64) (*domain.CompanionService, error)
}

type companionServiceRepository struct {
	db *gorm.DB
}

// NewCompanionServiceRepository creates a new CompanionServiceRepository
func NewCompanionServiceRepository(db *gorm.DB) CompanionServiceRepository {
	return &companionServiceRepository{db: db}
}

// FindByID returns an active service by ID, or nil if absent
func (r *companionServiceRepository) FindByID(id int64) (*domain.CompanionService, error) {
	var service domain.CompanionService
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}
