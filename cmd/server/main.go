// Package main runs the membership management HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/memberhq/backend/config"
	"github.com/memberhq/backend/internal/auth"
	"github.com/memberhq/backend/internal/dashboard"
	"github.com/memberhq/backend/internal/diagnostics"
	"github.com/memberhq/backend/internal/events"
	"github.com/memberhq/backend/internal/images"
	"github.com/memberhq/backend/internal/members"
	"github.com/memberhq/backend/internal/middleware"
	"github.com/memberhq/backend/internal/payments"
	"github.com/memberhq/backend/internal/plans"
	"github.com/memberhq/backend/internal/registrations"
	"github.com/memberhq/backend/internal/subscriptions"
	"github.com/memberhq/backend/pkg/database"
	"github.com/memberhq/backend/pkg/redis"
	"github.com/memberhq/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	sessions := auth.NewRevocationStore(rdb.Client)

	// Auth and tenant scoping
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, sessions, logger)

	// Members
	memberRepo := members.NewRepository(pool)
	memberHandler := members.NewHandler(memberRepo, logger)

	// Plans
	planRepo := plans.NewRepository(pool)
	planHandler := plans.NewHandler(planRepo, logger)

	// Subscriptions
	subscriptionRepo := subscriptions.NewRepository(pool)
	subscriptionHandler := subscriptions.NewHandler(subscriptionRepo, planRepo, memberRepo, logger)

	// Events (organization surface + public surface)
	eventRepo := events.NewRepository(pool)
	eventHandler := events.NewHandler(eventRepo, logger)
	publicEventHandler := events.NewPublicHandler(eventRepo, logger)

	// Event registrations
	registrationRepo := registrations.NewRepository(pool)
	registrationHandler := registrations.NewHandler(registrationRepo, eventRepo, memberRepo, logger)

	// Payments
	paymentRepo := payments.NewRepository(pool)
	paymentHandler := payments.NewHandler(paymentRepo, memberRepo, logger)

	// Images (database blob store)
	imageRepo := images.NewRepository(pool)
	imageHandler := images.NewHandler(imageRepo, cfg.Upload.MaxImageBytes, logger)

	// Dashboard aggregates
	dashboardRepo := dashboard.NewRepository(pool)
	dashboardHandler := dashboard.NewHandler(dashboardRepo, paymentRepo, subscriptionRepo, logger)

	// Diagnostics
	diagnosticsHandler := diagnostics.NewHandler(pool, rdb.Client, cfg.Admin.DiagnosticsToken, jwtService, sessions, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.PageGuard([]string{"/dashboard", "/members", "/events", "/settings"}, cfg.Server.SignInPath))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public)
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// Public event surface (no auth)
	router.GET("/api/public/events", publicEventHandler.List)
	router.GET("/api/public/events/:id", publicEventHandler.Get)

	// Image serving (ids are unguessable, responses immutable)
	router.GET("/api/images/:id", imageHandler.Serve)

	// Diagnostics (session or shared admin token; checked in handler)
	router.GET("/api/diagnostics", diagnosticsHandler.Get)

	// Session-only endpoints (JWT, no tenant scope needed)
	session := router.Group("/api")
	session.Use(middleware.JWT(jwtService, sessions))
	{
		session.POST("/auth/logout", authHandler.Logout)
		session.GET("/auth/me", authHandler.Me)
		session.POST("/images", imageHandler.Upload)
		session.PATCH("/images/attach", imageHandler.Attach)
	}

	// Organization-scoped API: JWT, then tenant resolution once for all handlers
	api := router.Group("/api")
	api.Use(middleware.JWT(jwtService, sessions))
	api.Use(middleware.OrgScope(authRepo))
	{
		api.GET("/members", memberHandler.List)
		api.POST("/members", memberHandler.Create)
		api.GET("/members/:id", memberHandler.Get)
		api.PATCH("/members/:id", memberHandler.Update)
		api.DELETE("/members/:id", memberHandler.Delete)

		api.GET("/plans", planHandler.List)
		api.POST("/plans", middleware.RequireRole("admin"), planHandler.Create)
		api.PATCH("/plans/:id", middleware.RequireRole("admin"), planHandler.Update)

		api.GET("/subscriptions", subscriptionHandler.List)
		api.POST("/subscriptions", subscriptionHandler.Create)
		api.PATCH("/subscriptions/:id/cancel", subscriptionHandler.Cancel)

		api.GET("/events", eventHandler.List)
		api.POST("/events", eventHandler.Create)
		api.GET("/events/:id", eventHandler.Get)
		api.PATCH("/events/:id", eventHandler.Update)
		api.PATCH("/events/:id/cancel", eventHandler.Cancel)
		api.GET("/events/:id/registrations", registrationHandler.ListByEvent)
		api.POST("/events/:id/registrations", registrationHandler.Create)
		api.PATCH("/registrations/:id", registrationHandler.UpdateStatus)

		api.GET("/payments", paymentHandler.List)
		api.POST("/payments", paymentHandler.Create)

		api.GET("/dashboard/stats", dashboardHandler.Stats)
		api.GET("/dashboard/activity-stats", dashboardHandler.ActivityStats)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
