package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/rahularya002/make-songs/internal/auth"
	"github.com/rahularya002/make-songs/internal/config"
	"github.com/rahularya002/make-songs/internal/handlers"
	"github.com/rahularya002/make-songs/internal/middleware"
	"github.com/rahularya002/make-songs/internal/utils"
)

// Deps are the wired dependencies the HTTP layer needs.
type Deps struct {
	Logger  *zap.SugaredLogger
	Tokens  *auth.TokenManager
	Auth    *handlers.AuthHandler
	Upload  *handlers.UploadHandler
	Limiter *middleware.RateLimiter
}

// New builds the Fiber app: global middlewares, the route guard, and routes.
func New(cfg *config.Config, d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BodyLimit:    12 * 1024 * 1024, // transport ceiling; per-kind gates enforce 10MB
		ErrorHandler: errorHandler,
	})

	app.Use(cors.New())
	app.Use(requestLogger(d.Logger))
	app.Use(middleware.RouteGuard(d.Tokens))

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", d.Limiter.Middleware(), d.Auth.Signup)
	authGroup.Post("/login", d.Limiter.Middleware(), d.Auth.Login)
	authGroup.Post("/logout", d.Auth.Logout)

	api := app.Group("/api", middleware.RequireSession(d.Tokens))
	api.Post("/upload/:kind", d.Upload.Upload)
	api.Get("/uploads", d.Upload.List)

	registerPages(app)
	return app
}

// errorHandler keeps every error in the flat JSON shape. Bodies over the
// transport ceiling are rejected before any handler runs, so the size message
// is mapped here too.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code == fiber.StatusRequestEntityTooLarge {
			return utils.JSONError(c, fiber.StatusBadRequest, "File size exceeds the 10MB limit")
		}
		return utils.JSONError(c, fe.Code, fe.Message)
	}
	return utils.JSONError(c, fiber.StatusInternalServerError, "Internal Server Error")
}

func requestLogger(logger *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Infow("http request",
			"method", c.Method(),
			"path", c.Path(),
			"ip", c.IP(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(start),
		)
		return err
	}
}
