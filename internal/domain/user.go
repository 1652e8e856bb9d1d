package domain

import "time"

// User types
const (
	UserTypeClient    = "client"
	UserTypeCompanion = "companion"
	UserTypeAdmin     = "admin"
)

// User is a read-only projection of the identity service's users table.
// The chat subsystem never writes to it; accounts are managed elsewhere.
type User struct {
	ID           int64      `gorm:"column:id;primaryKey" json:"id"`
	Name         string     `gorm:"column:name" json:"name"`
	UserType     string     `gorm:"column:user_type" json:"user_type"`
	IsActive     bool       `gorm:"column:is_active" json:"is_active"`
	LastActiveAt *time.Time `gorm:"column:last_active_at" json:"last_active_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsCompanion reports whether the user is an active companion
func (u *User) IsCompanion() bool {
	return u.UserType == UserTypeCompanion && u.IsActive
}

// IsClient reports whether the user is an active client
func (u *User) IsClient() bool {
	return u.UserType == UserTypeClient && u.IsActive
}

// Summary converts a User to the participant summary shown in conversation lists
func (u *User) Summary() *ParticipantSummary {
	return &ParticipantSummary{
		ID:       u.ID,
		Name:     u.Name,
		UserType: u.UserType,
	}
}
