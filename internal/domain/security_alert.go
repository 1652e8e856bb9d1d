package domain

import "time"

// Alert types
const (
	AlertPhoneRequest         = "phone_request"
	AlertPersonalInfo         = "personal_info"
	AlertExternalContact      = "external_contact"
	AlertInappropriateContent = "inappropriate_content"
	AlertPaymentOutside       = "payment_outside"
)

// Severities
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// severityByType is the fixed severity mapping. Severity is derived from the
// alert type, never set freely.
var severityByType = map[string]string{
	AlertPhoneRequest:         SeverityMedium,
	AlertPersonalInfo:         SeverityHigh,
	AlertExternalContact:      SeverityCritical,
	AlertInappropriateContent: SeverityHigh,
	AlertPaymentOutside:       SeverityCritical,
}

// SeverityFor returns the severity for an alert type
func SeverityFor(alertType string) string {
	if s, ok := severityByType[alertType]; ok {
		return s
	}
	return SeverityLow
}

// alertCopy is the fixed platform copy shown to both participants when an
// alert fires. Kept in Portuguese, matching the platform's audience.
type alertCopy struct {
	Description    string
	Warning        string
	Recommendation string
}

var alertCopyByType = map[string]alertCopy{
	AlertPhoneRequest: {
		Description:    "Solicitação de número de telefone detectada",
		Warning:        "⚠️ ATENÇÃO: A plataforma DesejoLivre não rastreia conversas fora do chat. Para sua segurança, mantenha todas as comunicações aqui.",
		Recommendation: "Recomendamos manter a comunicação dentro da plataforma para maior segurança.",
	},
	AlertPersonalInfo: {
		Description:    "Solicitação de informações pessoais detectada",
		Warning:        "🚨 ALERTA DE SEGURANÇA: Não compartilhe informações pessoais sensíveis. A plataforma não pode garantir a segurança de dados compartilhados fora do sistema.",
		Recommendation: "Mantenha conversas profissionais e evite compartilhar dados pessoais.",
	},
	AlertExternalContact: {
		Description:    "Tentativa de contato externo detectada",
		Warning:        "🚨 ALERTA CRÍTICO: Tentativa de contato fora da plataforma detectada. A DesejoLivre não pode garantir sua segurança em comunicações externas.",
		Recommendation: "Mantenha toda comunicação dentro da plataforma. Caso necessário, use o sistema de contratação oficial.",
	},
	AlertInappropriateContent: {
		Description:    "Conteúdo inadequado detectado",
		Warning:        "🚨 ALERTA: Conteúdo inadequado detectado. A plataforma não tolera atividades ilegais ou inadequadas.",
		Recommendation: "Mantenha conversas respeitosas e dentro da legalidade.",
	},
	AlertPaymentOutside: {
		Description:    "Tentativa de pagamento fora da plataforma detectada",
		Warning:        "🚨 ALERTA CRÍTICO: Pagamentos fora da plataforma não têm nenhuma proteção. Use apenas o sistema de pagamento oficial.",
		Recommendation: "Realize pagamentos exclusivamente pela plataforma.",
	},
}

// AlertMetadata holds the user-facing texts attached to an alert
type AlertMetadata struct {
	WarningMessage string `json:"warning_message"`
	Recommendation string `json:"recommendation,omitempty"`
}

// SecurityAlert is a persisted record of one scanner finding
type SecurityAlert struct {
	ID               int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ConversationID   int64          `gorm:"column:conversation_id;index:idx_alert_conversation;not null" json:"conversation_id"`
	TriggeredBy      int64          `gorm:"column:triggered_by;index;not null" json:"triggered_by"`
	AlertType        string         `gorm:"column:alert_type;index:idx_alert_type_severity,priority:1" json:"alert_type"`
	TriggeredContent string         `gorm:"column:triggered_content;type:text" json:"triggered_content"`
	Description      string         `gorm:"column:description;type:text" json:"description"`
	Severity         string         `gorm:"column:severity;index:idx_alert_type_severity,priority:2;default:medium" json:"severity"`
	IsResolved       bool           `gorm:"column:is_resolved;index;default:false" json:"is_resolved"`
	ResolvedAt       *time.Time     `gorm:"column:resolved_at" json:"resolved_at,omitempty"`
	Metadata         *AlertMetadata `gorm:"column:metadata;serializer:json" json:"metadata,omitempty"`
	CreatedAt        time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (SecurityAlert) TableName() string {
	return "security_alerts"
}

// NewSecurityAlert builds an unresolved alert for the given type with the
// derived severity and fixed platform copy
func NewSecurityAlert(conversationID, triggeredBy int64, alertType, triggeredContent string) *SecurityAlert {
	c := alertCopyByType[alertType]
	return &SecurityAlert{
		ConversationID:   conversationID,
		TriggeredBy:      triggeredBy,
		AlertType:        alertType,
		TriggeredContent: triggeredContent,
		Description:      c.Description,
		Severity:         SeverityFor(alertType),
		Metadata: &AlertMetadata{
			WarningMessage: c.Warning,
			Recommendation: c.Recommendation,
		},
	}
}

// IsHighSeverity reports whether the alert is high or critical
func (a *SecurityAlert) IsHighSeverity() bool {
	return a.Severity == SeverityHigh || a.Severity == SeverityCritical
}
