package service

import (
	"regexp"
	"strings"

	"github.com/desejolivre/chat-backend/internal/domain"
)

// Finding is a single scanner detection within one message
type Finding struct {
	AlertType      string
	MatchedExcerpt string
}

// Pattern sets are matched against lowercased, trimmed content. The rule set
// is fixed: the same input always yields the same findings.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:telefone|celular|whatsapp|zap|zapzap|wpp|fone|contato)\b`),
	regexp.MustCompile(`\b(?:número|num|tel|cel)\s+(?:de\s+)?(?:telefone|celular|whatsapp)\b`),
	regexp.MustCompile(`\b(?:me\s+)?(?:passe|passa|manda|envia|envie)\s+(?:seu|o\s+)?(?:telefone|celular|whatsapp|zap)\b`),
	regexp.MustCompile(`\b(?:qual\s+é\s+)?(?:seu|o\s+)?(?:telefone|celular|whatsapp|zap)\b`),
	regexp.MustCompile(`\b(?:chama|liga|telefona)\s+(?:para|no)\s+(?:mim|eu)\b`),
	// Brazilian phone number shapes
	regexp.MustCompile(`\b\d{2}\s*\d{4,5}\s*-?\s*\d{4}\b`),
	regexp.MustCompile(`\b\d{10,11}\b`),
}

var personalInfoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:nome\s+completo|nome\s+real|nome\s+verdadeiro)\b`),
	regexp.MustCompile(`\b(?:endereço|onde\s+mora|onde\s+você\s+mora)\b`),
	regexp.MustCompile(`\b(?:cpf|rg|documento|identidade)\b`),
	regexp.MustCompile(`\b(?:idade|quantos\s+anos|data\s+de\s+nascimento)\b`),
	regexp.MustCompile(`\b(?:redes\s+sociais)\b`),
	regexp.MustCompile(`\b(?:email|e-mail|correio\s+eletrônico)\b`),
	regexp.MustCompile(`\b[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}\b`),
}

var externalContactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:instagram|facebook|twitter|tiktok|snapchat)\b`),
	regexp.MustCompile(`\b(?:telegram|signal|discord|skype)\b`),
	regexp.MustCompile(`\b(?:encontros|encontro|saída|saida|sair)\b`),
	regexp.MustCompile(`\b(?:hotel|motel|apartamento|casa)\b`),
	regexp.MustCompile(`\b(?:pix|transferência|transferencia|pagamento\s+externo)\b`),
	regexp.MustCompile(`\b(?:uber|99|cabify|taxi)\b`),
}

var inappropriatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:prostituição|prostituicao|prostituir)\b`),
	regexp.MustCompile(`\b(?:tráfico|trafico|drogas|maconha|cocaína)\b`),
	regexp.MustCompile(`\b(?:menor\s+de\s+idade|adolescente|menor)\b`),
	regexp.MustCompile(`\b(?:violência|violencia|agressão|agressao)\b`),
}

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	cpfPattern   = regexp.MustCompile(`\b\d{3}\.?\d{3}\.?\d{3}-?\d{2}\b`)
)

// SecurityScanner inspects message content for unsafe patterns.
// Stateless and side-effect free; persistence of findings belongs to the caller.
type SecurityScanner struct{}

// NewSecurityScanner creates a new SecurityScanner
func NewSecurityScanner() *SecurityScanner {
	return &SecurityScanner{}
}

// Scan analyzes content and returns at most one finding per alert type, in a
// fixed order: phone_request, personal_info, external_contact,
// inappropriate_content.
func (s *SecurityScanner) Scan(content string) []Finding {
	text := strings.ToLower(strings.TrimSpace(content))
	if text == "" {
		return nil
	}

	var findings []Finding

	if excerpt, ok := firstMatch(phonePatterns, text); ok {
		findings = append(findings, Finding{AlertType: domain.AlertPhoneRequest, MatchedExcerpt: excerpt})
	}
	if excerpt, ok := firstMatch(personalInfoPatterns, text); ok {
		findings = append(findings, Finding{AlertType: domain.AlertPersonalInfo, MatchedExcerpt: excerpt})
	}
	if excerpt, ok := firstMatch(externalContactPatterns, text); ok {
		findings = append(findings, Finding{AlertType: domain.AlertExternalContact, MatchedExcerpt: excerpt})
	}
	if excerpt, ok := firstMatch(inappropriatePatterns, text); ok {
		findings = append(findings, Finding{AlertType: domain.AlertInappropriateContent, MatchedExcerpt: excerpt})
	}

	return findings
}

// ContainsPhoneNumber reports whether content carries a Brazilian phone number shape
func (s *SecurityScanner) ContainsPhoneNumber(content string) bool {
	text := strings.ToLower(content)
	for _, p := range phonePatterns[len(phonePatterns)-2:] {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// ContainsEmail reports whether content carries an email address
func (s *SecurityScanner) ContainsEmail(content string) bool {
	return emailPattern.MatchString(content)
}

// ContainsCPF reports whether content carries a CPF-shaped document number
func (s *SecurityScanner) ContainsCPF(content string) bool {
	return cpfPattern.MatchString(content)
}

func firstMatch(patterns []*regexp.Regexp, text string) (string, bool) {
	for _, p := range patterns {
		if m := p.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}
