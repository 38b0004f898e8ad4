package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/artem13815/tracker/api/http/middleware"
	"github.com/artem13815/tracker/api/http/presenter"
	"github.com/artem13815/tracker/pkg/config"
	"github.com/artem13815/tracker/pkg/logger"
	"github.com/artem13815/tracker/pkg/metrics"
)

// NewApp builds the Fiber app with the shared error envelope and the global
// middleware chain. Routes are attached with Register.
func NewApp(cfg config.Config, log *logger.Logger, m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "tracker",
		ErrorHandler: presenter.ErrorHandler,
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	app.Use(
		middleware.RequestID(),
		middleware.AccessLog(log),
		middleware.Metrics(m),
		middleware.Recover(log),
		cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		}),
	)
	return app
}
