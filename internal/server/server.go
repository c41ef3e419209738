// Package server assembles the Fiber application: services, handlers,
// middleware and routes over one database handle.
package server

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/access"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/config"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/database"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/routes"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

type Options struct {
	// AccessLog enables the per-request log line.
	AccessLog bool
}

func New(cfg *config.Config, db *gorm.DB, opts Options) *fiber.App {
	resolver := access.NewResolver(access.NewGormLookup(db))

	// Services
	authService := services.NewAuthService(db, cfg)
	gate := services.NewModerationGate(db, resolver)
	postService := services.NewPostService(db, resolver, gate)
	commentService := services.NewCommentService(db, resolver)
	channelService := services.NewChannelService(db, resolver)
	reactionLedger := services.NewReactionLedger(db, resolver)
	reportService := services.NewReportService(db, resolver)
	eventService := services.NewEventService(db, resolver)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(func() error { return database.Ping(db) })
	eventHandler := handlers.NewEventHandler(eventService, channelService)
	postHandler := handlers.NewPostHandler(postService, gate, channelService)
	commentHandler := handlers.NewCommentHandler(commentService, channelService)
	reactionHandler := handlers.NewReactionHandler(reactionLedger)
	reportHandler := handlers.NewReportHandler(reportService)

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
		}))
	}
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecureHeaders())

	routes.Setup(app, cfg, authHandler, healthHandler, eventHandler, postHandler, commentHandler, reactionHandler, reportHandler)
	return app
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
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}
