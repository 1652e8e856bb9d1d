package repository

import (
	"errors"

	"github.com/desejolivre/chat-backend/internal/domain"
	"gorm.io/gorm"
)

// UserRepository is the read-only directory over the identity service's
// users table. Accounts are created and managed by the identity service;
// chat only resolves ids to roles and display names.
type UserRepository interface {
	FindByID(id int64) (*domain.User, error)
	FindByIDs(ids []int64) (map[int64]*domain.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByID returns a user by ID, or nil if absent
func (r *userRepository) FindByID(id int64) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByIDs returns users keyed by id. Missing ids are simply absent from the
// map; one query regardless of how many ids are requested.
func (r *userRepository) FindByIDs(ids []int64) (map[int64]*domain.User, error) {
	result := make(map[int64]*domain.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var users []*domain.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}
