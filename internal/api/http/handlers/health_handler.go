package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/doctor-portal/internal/observability"
	"github.com/spec-kit/doctor-portal/internal/persistence"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
	metrics     *observability.Metrics
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis, metrics: metrics}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports dependency state. Postgres is required when configured; Redis only
// backs the summary cache, so its absence degrades rather than fails readiness.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	switch {
	case !h.postgres.Enabled():
		depStatus["store"] = "memory"
	case h.postgres.Ping(ctx) != nil:
		depStatus["store"] = "postgres unavailable"
		ready = false
	default:
		depStatus["store"] = "postgres"
	}

	switch {
	case !h.redis.Enabled():
		depStatus["cache"] = "disabled"
	case h.redis.Ping(ctx) != nil:
		depStatus["cache"] = "degraded"
	default:
		depStatus["cache"] = "ok"
	}

	body := fiber.Map{
		"status":       "ready",
		"dependencies": depStatus,
	}
	if !ready {
		body["status"] = "unavailable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(body)
	}
	return c.JSON(body)
}

// Metrics reports request counters. It is mounted behind the session middleware.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.metrics.Snapshot()})
}
