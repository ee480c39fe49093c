package server

import (
	"log"

	"ankibridge-be/internal/bootstrap"
	"ankibridge-be/internal/config"
	"ankibridge-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // 1MB, requests are small JSON payloads
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CorsAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	app.Use(serverutils.ErrorHandlerMiddleware())

	// The browser front end is served as static files next to the API.
	app.Static("/", cfg.App.StaticDir)

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.AnkiController.RegisterRoutes(api)
	c.CardController.RegisterRoutes(api)
	c.BatchController.RegisterRoutes(api)
	c.BrowseController.RegisterRoutes(api)
	c.InstructionController.RegisterRoutes(api)
	c.SettingsController.RegisterRoutes(api)
}
