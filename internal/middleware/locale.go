package middleware

import (
	"github.com/desejolivre/chat-backend/pkg/i18n"
	"github.com/gin-gonic/gin"
)

var bundle *i18n.Bundle

// Locale resolves the request locale from Accept-Language and stores it in
// the context. Also installs the bundle used by the T helper.
func Locale(b *i18n.Bundle) gin.HandlerFunc {
	bundle = b
	return func(c *gin.Context) {
		locale := i18n.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
		c.Set("locale", locale)
		c.Next()
	}
}

// GetLocale extracts the resolved locale from context
func GetLocale(c *gin.Context) i18n.Locale {
	if v, exists := c.Get("locale"); exists {
		if locale, ok := v.(i18n.Locale); ok {
			return locale
		}
	}
	return i18n.LocalePt
}

// T translates a message key using the request's locale
func T(c *gin.Context, key string, args ...interface{}) string {
	if bundle == nil {
		return key
	}
	return bundle.T(GetLocale(c), key, args...)
}
