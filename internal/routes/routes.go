package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/config"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	eventHandler *handlers.EventHandler,
	postHandler *handlers.PostHandler,
	commentHandler *handlers.CommentHandler,
	reactionHandler *handlers.ReactionHandler,
	reportHandler *handlers.ReportHandler,
) {
	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	// Auth — public
	auth := api.Group("/auth")
	if cfg.AuthRateLimit > 0 {
		auth.Use(limiter.New(limiter.Config{
			Max:               cfg.AuthRateLimit,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		}))
	}
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected routes: JWT verification, then the caller becomes an access.Actor.
	jwt := middleware.JWTProtected(cfg)
	actor := middleware.Actor(cfg)

	api.Post("/auth/logout", jwt, actor, authHandler.Logout)
	api.Get("/auth/me", jwt, actor, authHandler.Me)

	// Events and registrations
	api.Post("/event", jwt, actor, eventHandler.Create)
	api.Get("/event/:id", jwt, actor, eventHandler.Get)
	api.Put("/event/:id/approve", jwt, actor, eventHandler.Approve)
	api.Put("/event/:id/reject", jwt, actor, eventHandler.Reject)
	api.Put("/event/:id/cancel", jwt, actor, eventHandler.Cancel)
	api.Post("/event/:id/register", jwt, actor, eventHandler.Register)
	api.Get("/event/:id/registrations", jwt, actor, eventHandler.Registrations)
	api.Put("/registration/:id/accept", jwt, actor, eventHandler.AcceptRegistration)
	api.Put("/registration/:id/cancel", jwt, actor, eventHandler.CancelRegistration)
	api.Put("/registration/:id/reject", jwt, actor, eventHandler.RejectRegistration)
	api.Get("/channel/:eventId", jwt, actor, eventHandler.Channel)

	// Posts; /post/pending must be registered before /post/:id
	api.Post("/post", jwt, actor, postHandler.Create)
	api.Get("/post", jwt, actor, postHandler.List)
	api.Get("/post/pending", jwt, actor, postHandler.Pending)
	api.Get("/post/:id", jwt, actor, postHandler.Get)
	api.Put("/post/:id", jwt, actor, postHandler.Update)
	api.Delete("/post/:id", jwt, actor, postHandler.Delete)
	api.Put("/post/:id/approve", jwt, actor, postHandler.Approve)
	api.Put("/post/:id/reject", jwt, actor, postHandler.Reject)

	// Comments
	api.Post("/comment", jwt, actor, commentHandler.Create)
	api.Get("/comment/:postId", jwt, actor, commentHandler.List)
	api.Put("/comment/:id", jwt, actor, commentHandler.Update)
	api.Delete("/comment/:id", jwt, actor, commentHandler.Delete)

	// Reactions
	api.Post("/reaction", jwt, actor, reactionHandler.React)
	api.Post("/reaction/toggle", jwt, actor, reactionHandler.Toggle)
	api.Get("/reaction", jwt, actor, reactionHandler.Counts)
	api.Delete("/reaction", jwt, actor, reactionHandler.Delete)
	api.Delete("/reaction/:id", jwt, actor, reactionHandler.DeleteByID)

	// Reports
	api.Post("/report", jwt, actor, reportHandler.Create)
	api.Get("/report", jwt, actor, reportHandler.List)
	api.Put("/report/:id", jwt, actor, reportHandler.Handle)
}
