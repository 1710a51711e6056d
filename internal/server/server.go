package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/ecosort/waste-api/internal/config"
	"github.com/ecosort/waste-api/internal/handlers"
)

// New assembles the fiber app: middleware, routes and static assets.
func New(cfg *config.Config, h *handlers.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "waste-api",
		BodyLimit:    cfg.MaxUploadBytes,
		ErrorHandler: errorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "*",
	}))
	app.Use(logger.New())

	app.Get("/", h.Index)
	app.Post("/predict", h.Predict)
	app.Get("/health", h.Health)
	app.Static("/static", cfg.StaticDir)

	return app
}

// errorHandler renders every handler error as a JSON detail body, keeping
// the status code the fiber.Error carries.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(handlers.ErrorResponse{Detail: err.Error()})
}
