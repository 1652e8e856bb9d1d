package i18n

// DefaultMessages returns built-in translations for all supported locales.
// These can be overridden by loading JSON files from a directory.
func DefaultMessages() map[Locale]map[string]string {
	return map[Locale]map[string]string{
		LocalePt: ptMessages,
		LocaleEn: enMessages,
	}
}

var ptMessages = map[string]string{
	// Common errors
	"error.not_found":         "Recurso não encontrado",
	"error.unauthorized":      "Autenticação necessária",
	"error.forbidden":         "Acesso negado",
	"error.bad_request":       "Requisição inválida",
	"error.internal":          "Erro interno do servidor",
	"error.too_many_requests": "Muitas requisições. Tente novamente em instantes",
	"error.validation":        "Dados inválidos",

	// Auth
	"auth.token_expired": "Token de autenticação expirado. Faça login novamente",
	"auth.token_invalid": "Token de autenticação inválido",
	"auth.login_required": "Login necessário",

	// Chat
	"chat.conversation_not_found":  "Conversa não encontrada",
	"chat.not_participant":         "Você não tem permissão para acessar esta conversa",
	"chat.send_forbidden":          "Você não tem permissão para enviar mensagens nesta conversa",
	"chat.only_clients_start":      "Apenas clientes podem iniciar conversas",
	"chat.only_clients_request":    "Apenas clientes podem solicitar serviços",
	"chat.companion_not_found":     "Usuário não é uma acompanhante válida",
	"chat.content_required":        "O conteúdo da mensagem é obrigatório",
	"chat.content_too_long":        "A mensagem não pode ter mais de %d caracteres",
	"chat.invalid_message_type":    "Tipo de mensagem inválido",
	"chat.marked_read":             "Mensagens marcadas como lidas",
	"chat.service_not_found":       "Serviço não encontrado",
	"chat.service_request_default": "Gostaria de contratar o serviço: %s",

	// Alerts
	"alert.not_found":       "Alerta não encontrado",
	"alert.resolved":        "Alerta resolvido",
	"alert.admin_only":      "Apenas moderadores podem resolver alertas",

	// Notifications
	"notification.not_found":   "Notificação não encontrada",
	"notification.marked_read": "Notificação marcada como lida",
	"notification.new_message": "Nova mensagem no chat",
	"notification.service_request": "Solicitação de serviço",
}

var enMessages = map[string]string{
	// Common errors
	"error.not_found":         "Resource not found",
	"error.unauthorized":      "Authentication required",
	"error.forbidden":         "Access denied",
	"error.bad_request":       "Invalid request",
	"error.internal":          "Internal server error",
	"error.too_many_requests": "Too many requests. Please try again shortly",
	"error.validation":        "Invalid input",

	// Auth
	"auth.token_expired": "Authentication token expired. Please log in again",
	"auth.token_invalid": "Invalid authentication token",
	"auth.login_required": "Login required",

	// Chat
	"chat.conversation_not_found":  "Conversation not found",
	"chat.not_participant":         "You do not have permission to access this conversation",
	"chat.send_forbidden":          "You do not have permission to send messages in this conversation",
	"chat.only_clients_start":      "Only clients can start conversations",
	"chat.only_clients_request":    "Only clients can request services",
	"chat.companion_not_found":     "User is not a valid companion",
	"chat.content_required":        "Message content is required",
	"chat.content_too_long":        "Message cannot be longer than %d characters",
	"chat.invalid_message_type":    "Invalid message type",
	"chat.marked_read":             "Messages marked as read",
	"chat.service_not_found":       "Service not found",
	"chat.service_request_default": "I would like to hire the service: %s",

	// Alerts
	"alert.not_found":  "Alert not found",
	"alert.resolved":   "Alert resolved",
	"alert.admin_only": "Only moderators can resolve alerts",

	// Notifications
	"notification.not_found":   "Notification not found",
	"notification.marked_read": "Notification marked as read",
	"notification.new_message": "New chat message",
	"notification.service_request": "Service request",
}
