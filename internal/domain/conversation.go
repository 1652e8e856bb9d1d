package domain

import "time"

// Conversation statuses
const (
	ConversationActive   = "active"
	ConversationBlocked  = "blocked"
	ConversationArchived = "archived"
)

// Conversation represents a chat thread between one client and one companion.
// At most one conversation exists per (client, companion) pair.
type Conversation struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ClientID      int64      `gorm:"column:client_id;uniqueIndex:idx_conversation_pair;not null" json:"client_id"`
	CompanionID   int64      `gorm:"column:companion_id;uniqueIndex:idx_conversation_pair;not null" json:"companion_id"`
	Status        string     `gorm:"column:status;default:active" json:"status"`
	LastMessageAt *time.Time `gorm:"column:last_message_at" json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Conversation) TableName() string {
	return "chat_conversations"
}

// IsParticipant reports whether the user is one of the two participants
func (c *Conversation) IsParticipant(userID int64) bool {
	return c.ClientID == userID || c.CompanionID == userID
}

// OtherParticipant returns the participant that is not the given user
func (c *Conversation) OtherParticipant(userID int64) int64 {
	if c.ClientID == userID {
		return c.CompanionID
	}
	return c.ClientID
}

// StartConversationRequest body for POST /conversations/start
type StartConversationRequest struct {
	CompanionID int64 `json:"companion_id" binding:"required"`
}

// ParticipantSummary is the other participant as shown in conversation lists
type ParticipantSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	UserType string `json:"user_type"`
}

// ConversationResponse represents a conversation in API responses
type ConversationResponse struct {
	ID               int64               `json:"id"`
	Status           string              `json:"status"`
	LastMessageAt    *time.Time          `json:"last_message_at,omitempty"`
	OtherParticipant *ParticipantSummary `json:"other_participant,omitempty"`
	LastMessage      *MessageResponse    `json:"last_message,omitempty"`
	UnreadCount      int64               `json:"unread_count"`
	CreatedAt        time.Time           `json:"created_at"`
}

// ToResponse converts Conversation to ConversationResponse
func (c *Conversation) ToResponse() *ConversationResponse {
	return &ConversationResponse{
		ID:            c.ID,
		Status:        c.Status,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
	}
}

// ChatStatsResponse aggregates per-user chat counters
type ChatStatsResponse struct {
	TotalConversations int64 `json:"total_conversations"`
	UnreadMessages     int64 `json:"unread_messages"`
	SecurityAlerts     int64 `json:"security_alerts"`
}
