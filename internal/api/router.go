package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/maqsafnadatabase3/Ropoilet/docs"
	"github.com/maqsafnadatabase3/Ropoilet/internal/api/handler"
	"github.com/maqsafnadatabase3/Ropoilet/internal/api/middleware"
	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
	"github.com/maqsafnadatabase3/Ropoilet/internal/core/ports"
	"github.com/maqsafnadatabase3/Ropoilet/internal/core/service"
	"github.com/maqsafnadatabase3/Ropoilet/internal/infrastructure/config"
	mongodb "github.com/maqsafnadatabase3/Ropoilet/internal/infrastructure/db/mongo"
	redisdb "github.com/maqsafnadatabase3/Ropoilet/internal/infrastructure/db/redis"
	"github.com/maqsafnadatabase3/Ropoilet/internal/infrastructure/llm"
	"github.com/maqsafnadatabase3/Ropoilet/internal/infrastructure/queue"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// NewRouter builds the Echo instance with every route registered and all
// dependencies constructed. The returned dispatcher is already started and
// stops when ctx is cancelled.
func NewRouter(ctx context.Context, cfg *config.Config, mc *mongodb.Conn, rc *redisdb.Conn, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("ropilot"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(mc.DB)
	projectRepo := mongodb.NewProjectRepository(mc.DB)
	bugRepo := mongodb.NewBugRepository(mc.DB)
	messageRepo := mongodb.NewMessageRepository(mc.DB)
	planRepo := mongodb.NewPlanRepository(mc.DB)
	subscriptionRepo := mongodb.NewSubscriptionRepository(mc.DB)
	notificationRepo := mongodb.NewNotificationRepository(mc.DB)
	settingsRepo := mongodb.NewSettingsRepository(mc.DB)
	analyticsRepo := mongodb.NewAnalyticsRepository(mc.DB)
	revocations := redisdb.NewRevocationStore(rc.Client)

	// --- Workers ---
	dispatcher := queue.NewDispatcher(0, notificationRepo, log)
	dispatcher.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(userRepo, revocations, cfg.JWTSecret, cfg.TokenTTL, log)
	projectService := service.NewProjectService(projectRepo, log)
	bugService := service.NewBugService(bugRepo, log)
	messageService := service.NewMessageService(messageRepo, log)
	planService := service.NewPlanService(planRepo, subscriptionRepo, dispatcher, log)
	analyticsService := service.NewAnalyticsService(analyticsRepo, log)
	assistantService := service.NewAssistantService(llm.NewOpenAIClient(llm.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
	}), cfg.OpenAI.Model, log)
	adminService := service.NewAdminService(userRepo, settingsRepo, dispatcher, log)
	notificationService := service.NewNotificationService(notificationRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	bugHandler := handler.NewBugHandler(bugService)
	messageHandler := handler.NewMessageHandler(messageService)
	planHandler := handler.NewPlanHandler(planService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	assistantHandler := handler.NewAssistantHandler(assistantService)
	adminHandler := handler.NewAdminHandler(adminService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	healthHandler := handler.NewHealthHandler(Version, mc, rc)

	authRequired := middleware.Auth(cfg.JWTSecret, revocations)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Public routes ---
	e.GET("/health", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	auth := v1.Group("", authRequired)
	auth.GET("/auth/session", authHandler.Session)
	auth.POST("/auth/logout", authHandler.Logout)

	auth.POST("/projects", projectHandler.Create)
	auth.GET("/projects", projectHandler.List)
	auth.GET("/projects/:id", projectHandler.Get)
	auth.PUT("/projects/:id", projectHandler.Update)
	auth.DELETE("/projects/:id", projectHandler.Delete)

	auth.POST("/bugs", bugHandler.Report)
	auth.GET("/bugs", bugHandler.List)
	auth.GET("/bugs/:id", bugHandler.Get)
	auth.PATCH("/bugs/:id/status", bugHandler.UpdateStatus)
	auth.PATCH("/bugs/:id/assign", bugHandler.Assign)

	auth.POST("/messages", messageHandler.Send)
	auth.GET("/messages", messageHandler.List)

	auth.GET("/plans", planHandler.List)
	auth.POST("/plans", planHandler.Create, adminOnly)
	auth.PUT("/plans/:id", planHandler.Update, adminOnly)
	auth.DELETE("/plans/:id", planHandler.Delete, adminOnly)

	auth.POST("/analytics/events", analyticsHandler.Ingest)
	auth.GET("/analytics/report", analyticsHandler.Report)

	auth.POST("/assistant/chat", assistantHandler.Chat)
	auth.GET("/assistant/templates", assistantHandler.Templates)

	auth.GET("/notifications", notificationHandler.List)
	auth.POST("/notifications/:id/read", notificationHandler.MarkRead)

	// --- Admin routes ---
	admin := v1.Group("/admin", authRequired, adminOnly)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users/:id/ban", adminHandler.BanUser)
	admin.POST("/users/:id/unban", adminHandler.UnbanUser)
	admin.GET("/features", adminHandler.Features)
	admin.PUT("/features", adminHandler.SetFeatures)
	admin.POST("/broadcast", adminHandler.Broadcast)

	return e
}

// EnsureIndexes creates all Mongo indexes. Called once at startup.
func EnsureIndexes(ctx context.Context, mc *mongodb.Conn) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	for _, r := range []interface {
		EnsureIndexes(context.Context) error
	}{
		mongodb.NewUserRepository(mc.DB),
		mongodb.NewProjectRepository(mc.DB),
		mongodb.NewBugRepository(mc.DB),
		mongodb.NewMessageRepository(mc.DB),
		mongodb.NewPlanRepository(mc.DB),
		mongodb.NewSubscriptionRepository(mc.DB),
		mongodb.NewNotificationRepository(mc.DB),
		mongodb.NewAnalyticsRepository(mc.DB),
	} {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.TokenRevoker = (*redisdb.RevocationStore)(nil)
