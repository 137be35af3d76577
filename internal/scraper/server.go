package scraper

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
)

type collectRequest struct {
	TargetRole string `json:"target_role"`
	Location   string `json:"location"`
}

// NewServer builds the collector's HTTP surface: the trigger endpoint the
// API calls, a task status probe, and a health check.
func NewServer(runner *Runner, logger *log.Logger) *fiber.App {
	app := fiber.New(fiber.Config{AppName: "career-compass-collector"})

	app.Post("/collect", func(c fiber.Ctx) error {
		var req collectRequest
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if strings.TrimSpace(req.TargetRole) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "target_role is required"})
		}

		taskID, err := runner.Start(req.TargetRole, req.Location)
		if err != nil {
			if errors.Is(err, ErrNoSources) {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "no sources configured"})
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if logger != nil {
			logger.Printf("[Collector] Run started | task=%s role=%s location=%s", taskID, strings.TrimSpace(req.TargetRole), strings.TrimSpace(req.Location))
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"task_id": taskID,
			"status":  string(TaskCollecting),
		})
	})

	app.Get("/tasks/:id", func(c fiber.Ctx) error {
		t, ok := runner.Task(c.Params("id"))
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown task"})
		}
		return c.JSON(t)
	})

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "timestamp": time.Now().UTC()})
	})

	return app
}
