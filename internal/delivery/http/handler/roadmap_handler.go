package handler

import (
	"errors"
	"strings"

	"career-compass/internal/delivery/http/dto"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/pkg/response"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RoadmapHandler struct {
	uc usecase.RoadmapUsecase
}

func NewRoadmapHandler(uc usecase.RoadmapUsecase) *RoadmapHandler {
	return &RoadmapHandler{uc: uc}
}

func (h *RoadmapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/roadmaps", h.ListDomains)
	r.Post("/users/me/roadmap", h.SelectDomain)
	r.Get("/users/me/roadmap", h.GetRoadmap)
	r.Put("/users/me/roadmap/milestones/:id", h.UpdateMilestone)
	r.Delete("/users/me/roadmap", h.AbandonDomain)
}

func (h *RoadmapHandler) ListDomains(c fiber.Ctx) error {
	domains, err := h.uc.ListDomains(c.Context())
	if err != nil {
		return mapRoadmapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, domains)
}

// SelectDomain picks a learning domain for the caller. Re-selecting the
// current domain is idempotent and answers 200 instead of 201.
func (h *RoadmapHandler) SelectDomain(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.SelectRoadmapRequest
	if err := c.Bind().Body(&req); err != nil {
		return bindError(err)
	}

	selection, created, err := h.uc.SelectDomain(c.Context(), userID, req.DomainID)
	if err != nil {
		return mapRoadmapUsecaseError(err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return response.Success(c, status, response.MessageOK, selection)
}

// GetRoadmap returns the milestone tree for a domain with the caller's
// per-milestone progress folded in. Without a domain_id query the
// active selection is used.
func (h *RoadmapHandler) GetRoadmap(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	domainID := strings.TrimSpace(c.Query("domain_id"))

	view, err := h.uc.GetRoadmap(c.Context(), userID, domainID)
	if err != nil {
		return mapRoadmapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, view)
}

func (h *RoadmapHandler) UpdateMilestone(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	milestoneID := strings.TrimSpace(c.Params("id"))
	if milestoneID == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Milestone id is required", nil, nil)
	}

	var req dto.UpdateMilestoneRequest
	if err := c.Bind().Body(&req); err != nil {
		return bindError(err)
	}

	progress, err := h.uc.UpdateMilestone(c.Context(), userID, milestoneID, req.Status)
	if err != nil {
		return mapRoadmapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, progress)
}

func (h *RoadmapHandler) AbandonDomain(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	domainID := strings.TrimSpace(c.Query("domain_id"))

	if err := h.uc.AbandonDomain(c.Context(), userID, domainID); err != nil {
		return mapRoadmapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapRoadmapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid milestone status", nil, err)
	case errors.Is(err, usecase.ErrDomainNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Domain not found", nil, err)
	case errors.Is(err, usecase.ErrNoRoadmapSelected):
		return middleware.NewAppError(fiber.StatusNotFound, "No roadmap selected", nil, err)
	case errors.Is(err, usecase.ErrMilestoneNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Milestone not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
