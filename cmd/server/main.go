package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sreaderapp/sreader-server/internal/config"
	"github.com/sreaderapp/sreader-server/internal/database"
	"github.com/sreaderapp/sreader-server/internal/dto"
	"github.com/sreaderapp/sreader-server/internal/email"
	"github.com/sreaderapp/sreader-server/internal/handlers"
	"github.com/sreaderapp/sreader-server/internal/logging"
	"github.com/sreaderapp/sreader-server/internal/middleware"
	"github.com/sreaderapp/sreader-server/internal/repository/postgres"
	"github.com/sreaderapp/sreader-server/internal/routes"
	"github.com/sreaderapp/sreader-server/internal/services"
	"github.com/sreaderapp/sreader-server/internal/ws"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.StdoutHandler(),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Repositories
	userRepo := postgres.NewUserRepository(database.DB)
	friendshipRepo := postgres.NewFriendshipRepository(database.DB)
	assignmentRepo := postgres.NewAssignmentRepository(database.DB)
	scheduleRepo := postgres.NewScheduleRepository(database.DB)
	attemptRepo := postgres.NewAttemptRepository(database.DB)
	multiplayerRepo := postgres.NewMultiplayerRepository(database.DB)
	gamificationRepo := postgres.NewGamificationRepository(database.DB)
	tokenRepo := postgres.NewTokenRepository(database.DB)

	// Websocket hub for live multiplayer sessions
	hub := ws.NewHub()
	go hub.Run()

	// Services
	mailer := email.NewMailer(cfg)
	authService := services.NewAuthService(userRepo, tokenRepo, mailer, cfg)
	userService := services.NewUserService(userRepo)
	friendshipService := services.NewFriendshipService(friendshipRepo, userRepo)
	gamificationService := services.NewGamificationService(gamificationRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, scheduleRepo, attemptRepo, gamificationService)
	multiplayerService := services.NewMultiplayerService(multiplayerRepo, assignmentRepo, gamificationService, hub)
	dashboardService := services.NewDashboardService(userService, authService, friendshipService, assignmentService, gamificationService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	friendshipHandler := handlers.NewFriendshipHandler(friendshipService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, gamificationService)
	multiplayerHandler := handlers.NewMultiplayerHandler(multiplayerService, hub)
	healthHandler := handlers.NewHealthHandler()

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, userRepo,
		authHandler, userHandler, friendshipHandler, assignmentHandler,
		dashboardHandler, multiplayerHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		sentry.CaptureException(err)
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}
