package domain

// CompanionService is a read-only projection of a service offered by a
// companion. Used to build the snapshot embedded in service_request messages.
type CompanionService struct {
	ID          int64   `gorm:"column:id;primaryKey" json:"id"`
	CompanionID int64   `gorm:"column:companion_id;index" json:"companion_id"`
	Name        string  `gorm:"column:name" json:"name"`
	Price       float64 `gorm:"column:price" json:"price"`
	Description string  `gorm:"column:description;type:text" json:"description,omitempty"`
	IsActive    bool    `gorm:"column:is_active;default:true" json:"is_active"`
}

func (CompanionService) TableName() string {
	return "companion_services"
}

// Snapshot returns the immutable service info embedded in chat messages
func (s *CompanionService) Snapshot() *ServiceInfo {
	return &ServiceInfo{
		ID:          s.ID,
		Name:        s.Name,
		Price:       s.Price,
		Description: s.Description,
	}
}
