package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	swagger "github.com/gofiber/swagger"

	"github.com/artem13815/tracker/api/http/handlers"
	"github.com/artem13815/tracker/pkg/auth"
	"github.com/artem13815/tracker/pkg/metrics"
	"github.com/artem13815/tracker/pkg/security/jwt"
)

// Routes bundles what Register mounts.
type Routes struct {
	Auth    *handlers.AuthHandler
	Items   *handlers.ItemsHandler
	Health  *handlers.HealthHandler
	AuthMW  fiber.Handler
	Metrics *metrics.Metrics
	// StaticDir, when set, serves the browser client from /.
	StaticDir string
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, r Routes) {
	// Health and readiness endpoints for probes/monitoring
	app.Get("/health", r.Health.Health)
	app.Get("/ready", r.Health.Ready)
	if r.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(r.Metrics.Handler()))
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	a := app.Group("/auth")
	a.Post("/login", r.Auth.Login)
	a.Post("/register", r.AuthMW, jwt.RequireRole(auth.RoleAdmin), r.Auth.Register)
	a.Post("/logout", r.AuthMW, r.Auth.Logout)

	app.Get("/me", r.AuthMW, r.Auth.Me)

	items := app.Group("/items", r.AuthMW)
	items.Get("/", r.Items.List)
	items.Post("/", r.Items.Create)
	items.Post("/bulk", r.Items.Bulk)
	items.Put("/:id", r.Items.Update)
	items.Delete("/:id", r.Items.Delete)

	if r.StaticDir != "" {
		app.Static("/", r.StaticDir)
	}
}
