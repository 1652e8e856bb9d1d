package domain

import "time"

// Message types
const (
	MessageText           = "text"
	MessageServiceRequest = "service_request"
	MessageSecurityAlert  = "security_alert"
)

// Sender kinds. System messages carry no user id; they are authored by the
// platform itself when a security finding is surfaced inline in the chat.
const (
	SenderUser   = "user"
	SenderSystem = "system"
)

// MaxMessageLength is the limit for user-authored message content
const MaxMessageLength = 1000

// ServiceInfo is the immutable snapshot of a companion service embedded in a
// service_request message. Prices shown in chat never change retroactively.
type ServiceInfo struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// AlertInfo links a security_alert message back to its SecurityAlert record
type AlertInfo struct {
	AlertID        int64  `json:"alert_id"`
	AlertType      string `json:"alert_type"`
	Severity       string `json:"severity"`
	Recommendation string `json:"recommendation,omitempty"`
}

// MessageMetadata is the typed payload attached to non-text messages.
// Exactly one branch is set depending on the message type.
type MessageMetadata struct {
	Service *ServiceInfo `json:"service,omitempty"`
	Alert   *AlertInfo   `json:"alert,omitempty"`
}

// Message represents a single chat message.
// Immutable once created, except for the read state pair.
type Message struct {
	ID             int64            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ConversationID int64            `gorm:"column:conversation_id;index:idx_conversation_created,priority:1;not null" json:"conversation_id"`
	SenderKind     string           `gorm:"column:sender_kind;default:user" json:"sender_kind"`
	SenderID       int64            `gorm:"column:sender_id;index" json:"sender_id"`
	Content        string           `gorm:"column:content;type:text" json:"content"`
	MessageType    string           `gorm:"column:message_type;default:text" json:"message_type"`
	Metadata       *MessageMetadata `gorm:"column:metadata;serializer:json" json:"metadata,omitempty"`
	IsRead         bool             `gorm:"column:is_read;default:false" json:"is_read"`
	ReadAt         *time.Time       `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt      time.Time        `gorm:"column:created_at;index:idx_conversation_created,priority:2" json:"created_at"`
}

func (Message) TableName() string {
	return "chat_messages"
}

// IsSystem reports whether the message was authored by the platform
func (m *Message) IsSystem() bool {
	return m.SenderKind == SenderSystem
}

// IsFromUser reports whether the message was sent by the given user
func (m *Message) IsFromUser(userID int64) bool {
	return m.SenderKind == SenderUser && m.SenderID == userID
}

// SendMessageRequest body for POST /conversations/:id/messages
type SendMessageRequest struct {
	Content     string `json:"content" binding:"required"`
	MessageType string `json:"message_type"`
}

// RequestServiceRequest body for POST /conversations/request-service
type RequestServiceRequest struct {
	ConversationID int64  `json:"conversation_id" binding:"required"`
	ServiceID      int64  `json:"service_id" binding:"required"`
	Message        string `json:"message"`
}

// MessageResponse represents a message in API responses.
// SenderID is omitted for system messages.
type MessageResponse struct {
	ID             int64            `json:"id"`
	ConversationID int64            `json:"conversation_id"`
	SenderID       *int64           `json:"sender_id,omitempty"`
	SenderKind     string           `json:"sender_kind"`
	Content        string           `json:"content"`
	MessageType    string           `json:"message_type"`
	Metadata       *MessageMetadata `json:"metadata,omitempty"`
	IsRead         bool             `json:"is_read"`
	ReadAt         *time.Time       `json:"read_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ToResponse converts Message to MessageResponse
func (m *Message) ToResponse() *MessageResponse {
	resp := &MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderKind:     m.SenderKind,
		Content:        m.Content,
		MessageType:    m.MessageType,
		Metadata:       m.Metadata,
		IsRead:         m.IsRead,
		ReadAt:         m.ReadAt,
		CreatedAt:      m.CreatedAt,
	}
	if m.SenderKind == SenderUser {
		senderID := m.SenderID
		resp.SenderID = &senderID
	}
	return resp
}
