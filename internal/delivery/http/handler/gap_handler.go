package handler

import (
	"errors"

	"career-compass/internal/delivery/http/dto"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/pkg/metrics"
	"career-compass/internal/pkg/response"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const defaultHistoryLimit = 10

type GapHandler struct {
	uc usecase.GapUsecase
}

func NewGapHandler(uc usecase.GapUsecase) *GapHandler {
	return &GapHandler{uc: uc}
}

func (h *GapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/analysis/gap", h.Analyze)
	r.Get("/analysis/latest", h.Latest)
	r.Get("/analysis/history", h.History)
}

// Analyze scores the caller's skill profile against the market snapshot
// for the requested role. A blank role falls back to the profile's
// target role inside the usecase.
func (h *GapHandler) Analyze(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.GapAnalyzeRequest
	if err := c.Bind().Body(&req); err != nil {
		return bindError(err)
	}

	out, err := h.uc.Analyze(c.Context(), userID, req.TargetRole, req.Location)
	if err != nil {
		return mapGapUsecaseError(err)
	}

	metrics.RecordGapReport(out.Report.OverallReadiness)
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *GapHandler) Latest(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	stored, err := h.uc.Latest(c.Context(), userID)
	if err != nil {
		return mapGapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, stored)
}

func (h *GapHandler) History(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	limit, err := parseQueryInt(c, "limit", defaultHistoryLimit)
	if err != nil {
		return err
	}

	items, err := h.uc.History(c.Context(), userID, limit)
	if err != nil {
		return mapGapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func mapGapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrNoSkillsOnProfile):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "No skills on profile to analyze", nil, err)
	case errors.Is(err, usecase.ErrNoMarketData):
		return middleware.NewAppError(fiber.StatusNotFound, "No market data for role", nil, err)
	case errors.Is(err, usecase.ErrReportNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "No gap report yet", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
