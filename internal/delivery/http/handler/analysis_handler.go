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

type AnalysisHandler struct {
	uc usecase.AnalysisUsecase
}

func NewAnalysisHandler(uc usecase.AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

func (h *AnalysisHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/analysis/complete", h.CompleteAnalysis)
}

// CompleteAnalysis runs the full pipeline for the caller: skill
// extraction, optional GitHub scan, market snapshot, gap scoring,
// course matching and roadmap suggestion. Stage progress is pushed
// over the websocket while the request is in flight.
func (h *AnalysisHandler) CompleteAnalysis(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.CompleteAnalysisRequest
	if err := c.Bind().Body(&req); err != nil {
		return bindError(err)
	}

	result, err := h.uc.CompleteAnalysis(c.Context(), userID, usecase.CompleteAnalysisInput{
		TargetRole: req.TargetRole,
		Location:   req.Location,
		GitHubURL:  req.GithubURL,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrAnalysisInProgress) {
			metrics.RecordAnalysisRun("rejected")
		} else {
			metrics.RecordAnalysisRun("failed")
		}
		return mapAnalysisUsecaseError(err)
	}

	metrics.RecordAnalysisRun("completed")
	for _, st := range result.Stages {
		metrics.RecordAnalysisStage(st.Stage, st.Status)
	}
	metrics.RecordAnalysisDuration(float64(result.FinishedAt.Sub(result.StartedAt).Microseconds()) / 1000.0)

	return response.Success(c, fiber.StatusOK, response.MessageOK, result)
}

func mapAnalysisUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrAnalysisInProgress):
		return middleware.NewAppError(fiber.StatusConflict, "An analysis is already running for this profile", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
