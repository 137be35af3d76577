package handler

import (
	"errors"
	"strings"

	"career-compass/internal/delivery/http/dto"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/domain/job"
	"career-compass/internal/pkg/response"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const defaultPostingPageSize = 20

type JobHandler struct {
	uc usecase.JobUsecase
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.Search)
	r.Post("/jobs/analyze", h.AnalyzePosting)
	r.Get("/jobs/:id", h.Get)
}

func (h *JobHandler) Search(c fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit", defaultPostingPageSize)
	if err != nil {
		return err
	}
	offset, err := parseQueryInt(c, "offset", 0)
	if err != nil {
		return err
	}

	params := job.SearchParams{
		Role:     strings.TrimSpace(c.Query("role")),
		Location: strings.TrimSpace(c.Query("location")),
		Limit:    limit,
	}

	page, err := h.uc.Search(c.Context(), params, offset)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, postingPageResponse(page))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		return err
	}

	p, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, postingResponse(p))
}

func (h *JobHandler) AnalyzePosting(c fiber.Ctx) error {
	var req dto.AnalyzePostingRequest
	if err := c.Bind().Body(&req); err != nil {
		return bindError(err)
	}

	out, err := h.uc.AnalyzePosting(c.Context(), req.Description)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Description too short to analyze", nil, err)
		}
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func postingResponse(p job.Posting) dto.PostingResponse {
	return dto.PostingResponse{
		ID:          p.ID,
		Source:      p.Source,
		Title:       p.Title,
		Company:     p.Company,
		Location:    p.Location,
		URL:         p.URL,
		Description: p.Description,
		TargetRole:  p.TargetRole,
		PostedAt:    p.PostedAt,
		CollectedAt: p.CollectedAt,
	}
}

func postingPageResponse(page usecase.PostingPage) dto.PostingPageResponse {
	items := make([]dto.PostingResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, postingResponse(p))
	}
	return dto.PostingPageResponse{
		Items:  items,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrPostingNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Posting not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
