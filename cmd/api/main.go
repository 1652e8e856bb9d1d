package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/desejolivre/chat-backend/internal/config"
	"github.com/desejolivre/chat-backend/internal/handler"
	"github.com/desejolivre/chat-backend/internal/middleware"
	"github.com/desejolivre/chat-backend/internal/migration"
	"github.com/desejolivre/chat-backend/internal/repository"
	"github.com/desejolivre/chat-backend/internal/routes"
	"github.com/desejolivre/chat-backend/internal/service"
	"github.com/desejolivre/chat-backend/pkg/cache"
	"github.com/desejolivre/chat-backend/pkg/events"
	"github.com/desejolivre/chat-backend/pkg/i18n"
	"github.com/desejolivre/chat-backend/pkg/jwt"
	"github.com/desejolivre/chat-backend/pkg/logger"
	pkgredis "github.com/desejolivre/chat-backend/pkg/redis"
)

func main() {
	config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	logger.Init(env)
	log := logger.GetLogger()

	cfg, err := config.Load(fmt.Sprintf("configs/config.%s.yaml", env))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// MySQL
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := migration.Run(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Redis is optional. Rate limiting and caching degrade gracefully
	// when it is unavailable.
	redisClient, err := pkgredis.NewClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, continuing without cache")
		redisClient = nil
	}
	cacheService := cache.NewService(redisClient)

	// Event publisher, falls back to log-only when RabbitMQ is not configured
	var publisher events.Publisher
	if cfg.Rabbit.URL != "" {
		publisher, err = events.New(cfg.Rabbit.URL, cfg.Rabbit.Exchange, *log)
		if err != nil {
			log.Warn().Err(err).Msg("rabbitmq unavailable, events will be dropped")
			publisher = events.NewFallback(*log)
		}
	} else {
		publisher = events.NewFallback(*log)
	}
	defer publisher.Close()

	bundle := i18n.NewBundle(i18n.LocalePt)
	for locale, messages := range i18n.DefaultMessages() {
		bundle.LoadMessages(locale, messages)
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Repositories
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	alertRepo := repository.NewSecurityAlertRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewCompanionServiceRepository(db)

	// Services
	scanner := service.NewSecurityScanner()
	notificationService := service.NewNotificationService(notificationRepo, publisher)
	chatService := service.NewChatService(
		conversationRepo, messageRepo, alertRepo, userRepo, serviceRepo,
		scanner, notificationService, cacheService, bundle,
	)

	// Handlers
	chatHandler := handler.NewChatHandler(chatService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	healthHandler := handler.NewHealthHandler(db)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(middleware.Locale(bundle))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.Setup(router, chatHandler, notificationHandler, healthHandler, jwtManager, redisClient)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("env", env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
