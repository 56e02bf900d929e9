package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/eduforge/eduforge-backend/internal/handlers"
	"github.com/eduforge/eduforge-backend/internal/middleware"
	"github.com/eduforge/eduforge-backend/internal/platform/envutil"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	UserHandler    *handlers.UserHandler
	ContentHandler *handlers.ContentHandler
	ChatHandler    *handlers.ChatHandler
	VideoHandler   *handlers.VideoHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(envutil.String("OTEL_SERVICE_NAME", "eduforge-backend")))

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.POST("/refresh", cfg.AuthHandler.Refresh)
		api.POST("/generate-questions", cfg.ContentHandler.GenerateQuestions)
		api.POST("/transcribe", cfg.ChatHandler.Transcribe)
		api.POST("/video-links", cfg.VideoHandler.VideoLinks)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// User
	protected.GET("/profile", cfg.UserHandler.GetProfile)
	protected.PUT("/profile", cfg.UserHandler.UpdateProfile)
	protected.PUT("/change-password", cfg.AuthHandler.ChangePassword)
	protected.DELETE("/account", cfg.AuthHandler.DeleteAccount)
	// Content
	protected.POST("/generate-content", cfg.ContentHandler.GenerateContent)
	protected.GET("/user-contents", cfg.ContentHandler.ListUserContents)
	protected.POST("/translate-content", cfg.ContentHandler.TranslateContent)
	// Chat
	protected.POST("/chat", cfg.ChatHandler.Chat)

	return router
}
