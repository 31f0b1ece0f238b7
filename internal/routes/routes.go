package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/sreaderapp/sreader-server/internal/config"
	"github.com/sreaderapp/sreader-server/internal/handlers"
	"github.com/sreaderapp/sreader-server/internal/middleware"
	"github.com/sreaderapp/sreader-server/internal/repository"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	users repository.UserRepository,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	friendshipHandler *handlers.FriendshipHandler,
	assignmentHandler *handlers.AssignmentHandler,
	dashboardHandler *handlers.DashboardHandler,
	multiplayerHandler *handlers.MultiplayerHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/password-reset/request", authHandler.RequestPasswordReset)
	auth.Post("/password-reset/verify", authHandler.VerifyResetOTP)
	auth.Post("/password-reset/confirm", authHandler.ResetPassword)

	jwt := middleware.JWTProtected(cfg)

	api.Post("/auth/logout", jwt, authHandler.Logout)
	api.Delete("/auth/account", jwt, authHandler.DeleteAccount)

	// Profile and account
	me := api.Group("/me", jwt)
	me.Get("/", userHandler.Me)
	me.Put("/", userHandler.UpdateMe)
	me.Get("/profile", authHandler.GetProfile)
	me.Put("/profile", authHandler.UpdateProfile)
	me.Get("/devices", userHandler.ListDevices)
	me.Post("/devices", userHandler.RegisterDevice)
	me.Delete("/devices/:id", userHandler.RevokeDevice)
	me.Get("/location", userHandler.GetLocation)
	me.Put("/location", userHandler.SaveLocation)

	// Friend graph
	friends := api.Group("/friends", jwt)
	friends.Get("/", friendshipHandler.ListFriends)
	friends.Get("/students", friendshipHandler.ListStudents)
	friends.Post("/requests", friendshipHandler.SendRequest)
	friends.Put("/requests/:id/accept", friendshipHandler.AcceptRequest)
	friends.Delete("/requests/:id/decline", friendshipHandler.DeclineRequest)
	friends.Delete("/requests/:id", friendshipHandler.CancelRequest)
	friends.Delete("/:id", friendshipHandler.RemoveFriend)
	friends.Put("/:id/block", friendshipHandler.BlockUser)

	// Assignments; creation and deletion are teacher-only
	assignments := api.Group("/assignments", jwt)
	assignments.Get("/", assignmentHandler.List)
	assignments.Get("/mine", middleware.TeacherRequired(users), assignmentHandler.ListMine)
	assignments.Get("/:id", assignmentHandler.Get)
	assignments.Get("/:id/attempts", middleware.TeacherRequired(users), assignmentHandler.ListAssignmentAttempts)
	assignments.Post("/", middleware.TeacherRequired(users), assignmentHandler.Create)
	assignments.Put("/:id", middleware.TeacherRequired(users), assignmentHandler.Update)
	assignments.Delete("/:id", middleware.TeacherRequired(users), assignmentHandler.Delete)

	schedule := api.Group("/schedule", jwt)
	schedule.Get("/", assignmentHandler.ListSchedules)
	schedule.Post("/", assignmentHandler.CreateSchedule)
	schedule.Delete("/:id", assignmentHandler.DeleteSchedule)

	attempts := api.Group("/attempts", jwt)
	attempts.Get("/", assignmentHandler.ListAttempts)
	attempts.Post("/", assignmentHandler.SubmitAttempt)

	// Dashboard and gamification
	api.Get("/dashboard", jwt, dashboardHandler.GetDashboard)
	api.Get("/stats", jwt, dashboardHandler.GetStats)
	api.Get("/leaderboard", jwt, dashboardHandler.Leaderboard)

	// Multiplayer sessions
	sessions := api.Group("/sessions", jwt)
	sessions.Post("/", multiplayerHandler.CreateSession)
	sessions.Post("/join", multiplayerHandler.JoinSession)
	sessions.Get("/:id", multiplayerHandler.GetSession)
	sessions.Put("/:id/start", multiplayerHandler.StartSession)
	sessions.Put("/:id/score", multiplayerHandler.SubmitScore)
	sessions.Put("/:id/finish", multiplayerHandler.FinishSession)
	sessions.Get("/:id/ws", multiplayerHandler.SocketUpgrade, multiplayerHandler.SessionSocket())
}
