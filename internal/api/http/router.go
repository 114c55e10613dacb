package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/duel-labs/roadmap-service/internal/api/http/handlers"
	"github.com/duel-labs/roadmap-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Users      *handlers.UsersHandler
	Roadmaps   *handlers.RoadmapsHandler
	Alarms     *handlers.AlarmsHandler
	Gatekeeper *auth.Gatekeeper
}

// RegisterRoutes wires HTTP routes. The gatekeeper runs on every request
// and consults the policy table, so routes are not grouped by access class
// here; the table is the single source of truth.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gatekeeper.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	api.Post("/email/check", cfg.Users.CheckEmail)
	api.Post("/email/code", cfg.Users.SendCode)
	api.Post("/email/code/check", cfg.Users.CheckCode)
	api.Post("/join", cfg.Users.Join)
	api.Post("/login", cfg.Users.Login)
	api.Get("/refresh", cfg.Users.Refresh)
	api.Post("/password/change", cfg.Users.ChangePassword)
	api.Post("/auth/logout", cfg.Users.Logout)
	api.Get("/users", cfg.Users.Me)

	api.Get("/roadmaps", cfg.Roadmaps.List)
	api.Get("/roadmaps/my", cfg.Roadmaps.ListMine)
	api.Get("/roadmaps/:roadmapId", cfg.Roadmaps.Get)
	api.Post("/roadmaps", cfg.Roadmaps.Create)
	api.Put("/roadmaps/:roadmapId", cfg.Roadmaps.Update)
	api.Post("/roadmaps/:roadmapId/steps", cfg.Roadmaps.AddStep)

	api.Get("/steps", cfg.Roadmaps.ListSteps)
	api.Delete("/steps/:stepId", cfg.Roadmaps.DeleteStep)

	api.Get("/comments/:stepId", cfg.Roadmaps.ListComments)
	api.Post("/comments/:stepId", cfg.Roadmaps.AddComment)
	api.Delete("/comments/:commentId", cfg.Roadmaps.DeleteComment)

	api.Get("/alarms", cfg.Alarms.List)
	api.Put("/alarms/:alarmId/read", cfg.Alarms.MarkRead)
}
