package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/leads-service/internal/api/http/handlers"
	"github.com/spec-kit/leads-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Status          *handlers.StatusHandler
	Quotes          *handlers.QuoteHandler
	Projects        *handlers.ProjectHandler
	Admin           *handlers.AdminHandler
	AdminMiddleware *auth.AdminMiddleware
	Gatherer        prometheus.Gatherer
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	api.Get("/", cfg.Status.Root)
	api.Post("/status", cfg.Status.Create)
	api.Get("/status", cfg.Status.List)
	api.Post("/quote", cfg.Quotes.Submit)
	api.Get("/projects", cfg.Projects.ListPublic)

	api.Post("/admin/login", cfg.Admin.Login)

	admin := api.Group("/admin", cfg.AdminMiddleware.Handle)
	admin.Get("/quotes", cfg.Admin.ListQuotes)
	admin.Patch("/quotes/:id/status", cfg.Admin.UpdateQuoteStatus)
	admin.Delete("/quotes/:id", cfg.Admin.DeleteQuote)
	admin.Get("/projects", cfg.Projects.ListAll)
	admin.Post("/projects", cfg.Projects.Create)
	admin.Put("/projects/:id", cfg.Projects.Update)
	admin.Delete("/projects/:id", cfg.Projects.Delete)
}
