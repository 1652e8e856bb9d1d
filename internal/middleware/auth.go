package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/desejolivre/chat-backend/internal/common"
	"github.com/desejolivre/chat-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// JWTAuth JWT authentication middleware
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, T(c, "auth.login_required"))
			c.Abort()
			return
		}

		// 2. Parse Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.ErrorResponse(c, http.StatusUnauthorized, T(c, "auth.token_invalid"))
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 3. Verify token
		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, http.StatusUnauthorized, T(c, "auth.token_expired"))
			} else {
				common.ErrorResponse(c, http.StatusUnauthorized, T(c, "auth.token_invalid"))
			}
			c.Abort()
			return
		}

		// 4. Store user info in context
		c.Set("userID", claims.UserID)
		c.Set("userType", claims.UserType)

		c.Next()
	}
}

// GetUserID extracts the authenticated user's id from context
func GetUserID(c *gin.Context) int64 {
	userID, exists := c.Get("userID")
	if !exists {
		return 0
	}
	if id, ok := userID.(int64); ok {
		return id
	}
	return 0
}

// GetUserType extracts the authenticated user's type from context
func GetUserType(c *gin.Context) string {
	userType, exists := c.Get("userType")
	if !exists {
		return ""
	}
	if t, ok := userType.(string); ok {
		return t
	}
	return ""
}
