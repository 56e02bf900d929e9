package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	redisclient "github.com/eduforge/eduforge-backend/internal/clients/redis"
	"github.com/eduforge/eduforge-backend/internal/content"
	"github.com/eduforge/eduforge-backend/internal/db"
	"github.com/eduforge/eduforge-backend/internal/handlers"
	"github.com/eduforge/eduforge-backend/internal/llm"
	"github.com/eduforge/eduforge-backend/internal/middleware"
	"github.com/eduforge/eduforge-backend/internal/observability"
	"github.com/eduforge/eduforge-backend/internal/platform/envutil"
	"github.com/eduforge/eduforge-backend/internal/platform/logger"
	"github.com/eduforge/eduforge-backend/internal/repos"
	"github.com/eduforge/eduforge-backend/internal/server"
	"github.com/eduforge/eduforge-backend/internal/services"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := envutil.String("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Tracing
	shutdownTracing := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: envutil.String("OTEL_SERVICE_NAME", "eduforge-backend"),
		Environment: envutil.String("APP_ENV", "development"),
		Version:     envutil.String("APP_VERSION", "dev"),
	})
	if shutdownTracing != nil {
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracing(flushCtx)
		}()
	}

	// Env
	jwtSecretKey := envutil.String("JWT_SECRET_KEY", "defaultsecret")
	accessTTL := envutil.Seconds("ACCESS_TOKEN_TTL", time.Hour)
	refreshTTL := envutil.Seconds("REFRESH_TOKEN_TTL", 24*time.Hour)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	contentRepo := repos.NewGeneratedContentRepo(thePG, log)

	// Redis cache (optional)
	var contentCache redisclient.ContentCache
	if envutil.String("REDIS_ADDR", "") != "" {
		contentCache, err = redisclient.NewContentCache(log)
		if err != nil {
			log.Warn("Redis cache unavailable, continuing without it", "error", err)
			contentCache = nil
		} else {
			defer contentCache.Close()
		}
	}

	// Text generation provider
	provider, err := llm.NewGeminiProvider(ctx, llm.GeminiConfig{
		APIKey: envutil.String("GEMINI_API_KEY", ""),
		Model:  envutil.String("GEMINI_MODEL", ""),
	})
	if err != nil {
		log.Error("Could not init Gemini provider", "error", err)
		os.Exit(1)
	}

	// Pipelines
	contentPipeline := content.NewContentPipeline(provider, log)
	questionPipeline := content.NewQuestionPipeline(provider, log)
	translationPipeline := content.NewTranslationPipeline(provider, log)

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, accessTTL, refreshTTL)
	userService := services.NewUserService(thePG, log, userRepo)
	contentService := services.NewContentService(thePG, log, contentRepo, contentCache, contentPipeline, questionPipeline, translationPipeline)
	chatService := services.NewChatService(log, provider)
	videoService := services.NewVideoService(log, envutil.String("YOUTUBE_API_KEY", ""))

	var transcriptionService services.TranscriptionService
	if envutil.Bool("TRANSCRIPTION_ENABLED", true) {
		transcriptionService, err = services.NewTranscriptionService(ctx, log)
		if err != nil {
			log.Warn("Could not init TranscriptionService, /api/transcribe disabled", "error", err)
			transcriptionService = nil
		} else {
			defer transcriptionService.Close()
		}
	}

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService, contentService)
	userHandler := handlers.NewUserHandler(userService)
	contentHandler := handlers.NewContentHandler(contentService)
	chatHandler := handlers.NewChatHandler(chatService, transcriptionService)
	videoHandler := handlers.NewVideoHandler(videoService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:    authHandler,
		AuthMiddleware: authMiddleware,
		UserHandler:    userHandler,
		ContentHandler: contentHandler,
		ChatHandler:    chatHandler,
		VideoHandler:   videoHandler,
	})

	port := envutil.String("PORT", "8080")
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
