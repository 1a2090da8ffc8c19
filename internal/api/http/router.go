package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/doctor-portal/internal/api/http/handlers"
	"github.com/spec-kit/doctor-portal/internal/auth"
	"github.com/spec-kit/doctor-portal/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Patients     *handlers.PatientsHandler
	Appointments *handlers.AppointmentsHandler
	Assistant    *handlers.AssistantHandler
	Session      *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes. Health, login and logout are the only routes
// reachable without a session.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")

	api.Get("/health", cfg.Health.Live)
	api.Get("/health/ready", cfg.Health.Ready)
	api.Post("/auth/login", cfg.Auth.Login)
	api.Post("/auth/logout", cfg.Auth.Logout)

	protected := api.Group("", cfg.Session.Handle)
	protected.Get("/auth/me", cfg.Auth.Me)
	protected.Get("/doctors", cfg.Patients.ListDoctors)

	protected.Get("/patients", cfg.Patients.ListPatients)
	protected.Get("/patients/:id", cfg.Patients.GetPatient)
	protected.Get("/patients/:id/appointments", cfg.Patients.ListAppointments)
	protected.Get("/patients/:id/ai-summary", cfg.Assistant.Summary)
	protected.Post("/patients/:id/ai-summary", cfg.Assistant.Summary)

	doctorOnly := auth.RequireRole(domain.RoleDoctor)
	protected.Get("/metrics", doctorOnly, cfg.Health.Metrics)

	protected.Post("/appointments", doctorOnly, cfg.Appointments.Create)
	protected.Put("/appointments/:id", doctorOnly, cfg.Appointments.Update)

	protected.Post("/chat", cfg.Assistant.Chat)
}
