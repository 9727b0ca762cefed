package api

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/vigia/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/vigia/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/vigia/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/vigia/internal/relay"
	"github.com/saturnino-fabrica-de-software/vigia/internal/repository"
	"github.com/saturnino-fabrica-de-software/vigia/internal/session"
)

type Dependencies struct {
	DB *pgxpool.Pool
}

type Router struct {
	app       *fiber.App
	logger    *slog.Logger
	deps      *Dependencies
	hub       *relay.Hub
	cancelHub context.CancelFunc
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Vigia API",
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints
	var pinger handler.Pinger
	if r.deps != nil && r.deps.DB != nil {
		pinger = r.deps.DB
	}
	healthHandler := handler.NewHealthHandler(pinger)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// API v1 group
	v1 := r.app.Group("/v1")

	// Only configure session routes if dependencies were provided
	if r.deps != nil {
		// Repositories and session service
		roomRepo := repository.NewRoomRepository(r.deps.DB)
		interviewRepo := repository.NewInterviewRepository(r.deps.DB)
		sessionService := session.NewService(roomRepo, interviewRepo, r.logger)

		// Realtime relay hub
		r.hub = relay.NewHub()
		hubCtx, hubCancel := context.WithCancel(context.Background())
		r.cancelHub = hubCancel
		go r.hub.Run(hubCtx)

		// Room handlers
		roomHandler := handler.NewRoomHandler(sessionService, r.logger)
		v1.Post("/rooms", roomHandler.Create)
		v1.Get("/rooms/:roomId", roomHandler.Get)
		v1.Post("/rooms/:roomId/join", roomHandler.Join)
		v1.Post("/rooms/:roomId/end", roomHandler.End)

		// Interview handlers; REST-logged events also reach the live
		// alert stream through the notifier
		interviewHandler := handler.NewInterviewHandler(sessionService, relay.NewNotifier(r.hub), r.logger)
		v1.Get("/interviews/:id", interviewHandler.Get)
		v1.Post("/interviews/:id/events", interviewHandler.LogEvent)
		v1.Get("/interviews/:id/report", interviewHandler.Report)

		// WebSocket endpoint
		v1.Get("/ws", relay.UpgradeMiddleware(), relay.Handler(r.hub, sessionService, r.logger))
	}
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	// Stop the relay hub
	if r.cancelHub != nil {
		r.cancelHub()
	}

	return r.app.Shutdown()
}
