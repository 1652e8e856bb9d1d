package routes

import (
	"github.com/desejolivre/chat-backend/internal/handler"
	"github.com/desejolivre/chat-backend/internal/middleware"
	"github.com/desejolivre/chat-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	chatHandler *handler.ChatHandler,
	notificationHandler *handler.NotificationHandler,
	healthHandler *handler.HealthHandler,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
) {
	router.GET("/health", healthHandler.Health)

	api := router.Group("/api/v1",
		middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()),
		middleware.JWTAuth(jwtManager),
	)

	conversations := api.Group("/conversations")
	{
		conversations.GET("", chatHandler.ListConversations)
		conversations.GET("/stats", chatHandler.Stats)
		conversations.POST("/start", chatHandler.StartConversation)
		conversations.POST("/request-service", chatHandler.RequestService)

		conversations.GET("/:id/messages", chatHandler.ListMessages)
		conversations.POST("/:id/messages", chatHandler.SendMessage)
		conversations.POST("/:id/read", chatHandler.MarkAsRead)
	}

	alerts := api.Group("/alerts")
	alerts.POST("/:id/resolve", chatHandler.ResolveAlert)

	notifications := api.Group("/notifications")
	{
		notifications.GET("", notificationHandler.List)
		notifications.GET("/unread-count", notificationHandler.UnreadCount)
		notifications.POST("/:id/read", notificationHandler.MarkAsRead)
	}
}
