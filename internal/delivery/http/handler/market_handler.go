package handler

import (
	"errors"
	"strings"

	"career-compass/internal/delivery/http/dto"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/pkg/metrics"
	"career-compass/internal/pkg/response"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MarketHandler struct {
	uc usecase.MarketUsecase
}

func NewMarketHandler(uc usecase.MarketUsecase) *MarketHandler {
	return &MarketHandler{uc: uc}
}

// RegisterRoutes must run before the job handler so the static
// /jobs/market-analysis path is matched ahead of /jobs/:id.
func (h *MarketHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/market/requirements", h.Requirements)
	r.Post("/market/collect", h.Collect)
	r.Get("/jobs/market-analysis", h.AnalyzeRole)
}

// Requirements serves the market snapshot for a role, refreshing stale
// data in the background when a collector is wired.
func (h *MarketHandler) Requirements(c fiber.Ctx) error {
	role := strings.TrimSpace(c.Query("role"))
	if role == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Query parameter role is required", nil, nil)
	}
	location := strings.TrimSpace(c.Query("location"))

	out, err := h.uc.Requirements(c.Context(), role, location)
	if err != nil {
		return mapMarketUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

// Collect asks the scraper service to gather fresh postings for a role.
// The work happens out of band, so the handler only returns the task id.
func (h *MarketHandler) Collect(c fiber.Ctx) error {
	var req dto.CollectMarketRequest
	if err := c.Bind().Body(&req); err != nil {
		return bindError(err)
	}

	taskID, err := h.uc.Collect(c.Context(), req.TargetRole, req.Location)
	if err != nil {
		return mapMarketUsecaseError(err)
	}

	return response.Success(c, fiber.StatusAccepted, response.MessageOK, fiber.Map{
		"task_id": taskID,
		"status":  "collecting",
	})
}

func (h *MarketHandler) AnalyzeRole(c fiber.Ctx) error {
	role := strings.TrimSpace(c.Query("role"))
	if role == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Query parameter role is required", nil, nil)
	}

	out, err := h.uc.AnalyzeRole(c.Context(), role)
	if err != nil {
		return mapMarketUsecaseError(err)
	}

	metrics.RecordMarketSnapshot(out.Source)
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapMarketUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNoMarketData):
		return middleware.NewAppError(fiber.StatusNotFound, "No market data for role", nil, err)
	case errors.Is(err, usecase.ErrCollectorUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Posting collector unavailable", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
