package domain

import "time"

// Notification categories used by the chat subsystem
const (
	NotificationChatMessage    = "chat.message"
	NotificationServiceRequest = "service.request"
)

// NotificationData is the opaque payload delivered with a notification
type NotificationData map[string]interface{}

// Notification represents a user notification row.
// Delivery to connected clients happens through the event publisher; this row
// is the durable copy shown in the notification center.
type Notification struct {
	ID        int64            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    int64            `gorm:"column:user_id;index;not null" json:"user_id"`
	Type      string           `gorm:"column:type" json:"type"`
	Title     string           `gorm:"column:title" json:"title"`
	Body      string           `gorm:"column:body;type:text" json:"body,omitempty"`
	Data      NotificationData `gorm:"column:data;serializer:json" json:"data,omitempty"`
	IsRead    bool             `gorm:"column:is_read;default:false" json:"is_read"`
	CreatedAt time.Time        `gorm:"column:created_at" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID        int64            `json:"id"`
	Type      string           `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body,omitempty"`
	Data      NotificationData `json:"data,omitempty"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

// ToResponse converts Notification to NotificationResponse
func (n *Notification) ToResponse() *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Body:      n.Body,
		Data:      n.Data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationSummaryResponse represents unread count response
type NotificationSummaryResponse struct {
	TotalUnread int64 `json:"total_unread"`
}
