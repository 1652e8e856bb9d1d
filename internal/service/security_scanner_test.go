package service

import (
	"strings"
	"testing"

	"github.com/desejolivre/chat-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestScan_NoFindings(t *testing.T) {
	scanner := NewSecurityScanner()

	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"whitespace only", "   \t\n  "},
		{"benign portuguese", "bom dia, tudo bem com você?"},
		{"benign english", "hello, how are you today?"},
		{"long clean content", strings.Repeat("a", 1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, scanner.Scan(tt.content))
		})
	}
}

func TestScan_SingleFinding(t *testing.T) {
	scanner := NewSecurityScanner()

	tests := []struct {
		name      string
		content   string
		alertType string
	}{
		{"whatsapp keyword", "me passa seu whatsapp", domain.AlertPhoneRequest},
		{"bare phone digits", "call me at 11987654321", domain.AlertPhoneRequest},
		{"formatted phone digits", "11 98765-4321", domain.AlertPhoneRequest},
		{"uppercase keyword", "Me Passa Seu WHATSAPP", domain.AlertPhoneRequest},
		{"email address", "escreva para ana@example.com", domain.AlertPersonalInfo},
		{"document keyword", "me manda uma foto do seu rg", domain.AlertPersonalInfo},
		{"social network", "meu instagram é @ana", domain.AlertExternalContact},
		{"pix mention", "aceita pix?", domain.AlertExternalContact},
		{"illegal content", "quero comprar drogas", domain.AlertInappropriateContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := scanner.Scan(tt.content)
			assert.Len(t, findings, 1)
			assert.Equal(t, tt.alertType, findings[0].AlertType)
			assert.NotEmpty(t, findings[0].MatchedExcerpt)
		})
	}
}

func TestScan_MultipleTypes(t *testing.T) {
	scanner := NewSecurityScanner()

	findings := scanner.Scan("me chama no zap ou no instagram")

	assert.Len(t, findings, 2)
	assert.Equal(t, domain.AlertPhoneRequest, findings[0].AlertType)
	assert.Equal(t, domain.AlertExternalContact, findings[1].AlertType)
}

func TestScan_OneFindingPerType(t *testing.T) {
	scanner := NewSecurityScanner()

	// Three phone triggers in one message still produce a single finding
	findings := scanner.Scan("telefone whatsapp celular")

	assert.Len(t, findings, 1)
	assert.Equal(t, domain.AlertPhoneRequest, findings[0].AlertType)
}

func TestScan_Deterministic(t *testing.T) {
	scanner := NewSecurityScanner()
	content := "me passa seu whatsapp e seu instagram"

	first := scanner.Scan(content)
	second := scanner.Scan(content)

	assert.Equal(t, first, second)
}

func TestContainsHelpers(t *testing.T) {
	scanner := NewSecurityScanner()

	assert.True(t, scanner.ContainsPhoneNumber("11 98765-4321"))
	assert.True(t, scanner.ContainsPhoneNumber("11987654321"))
	assert.False(t, scanner.ContainsPhoneNumber("olá, tudo bem?"))

	assert.True(t, scanner.ContainsEmail("ana@example.com"))
	assert.False(t, scanner.ContainsEmail("ana arroba example"))

	assert.True(t, scanner.ContainsCPF("123.456.789-00"))
	assert.True(t, scanner.ContainsCPF("12345678900"))
	assert.False(t, scanner.ContainsCPF("olá"))
}
