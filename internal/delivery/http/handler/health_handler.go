package handler

import (
	"context"
	"time"

	"career-compass/internal/database"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const healthProbeTimeout = 2 * time.Second

// HealthHandler answers liveness probes. It stays outside the
// authenticated group and the envelope so load balancers can parse it.
type HealthHandler struct {
	db    database.DB
	redis usecase.Pinger
}

func NewHealthHandler(db database.DB, redis usecase.Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthProbeTimeout)
	defer cancel()

	dbStatus := "ok"
	if h.db == nil || h.db.Ping(ctx) != nil {
		dbStatus = "down"
	}

	redisStatus := "ok"
	if h.redis == nil || h.redis.Ping(ctx) != nil {
		redisStatus = "down"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "ok" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status":    overall,
		"database":  dbStatus,
		"redis":     redisStatus,
		"timestamp": time.Now().UTC(),
	})
}
