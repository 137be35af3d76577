package handler

import (
	"errors"

	"career-compass/internal/delivery/http/dto"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/pkg/response"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/users/me/skills", h.ListSkills)
	r.Post("/users/me/skills", h.AddSkill)
	r.Post("/users/me/skills/extract", h.ExtractSkills)
	r.Delete("/users/me/skills/:name", h.DeleteSkill)
	r.Post("/resume/text", h.IngestResume)
}

func (h *SkillHandler) ListSkills(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	skills, err := h.uc.ListSkills(c.Context(), userID)
	if err != nil {
		return mapSkillUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, skills)
}

func (h *SkillHandler) AddSkill(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.AddSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return bindError(err)
	}

	view, err := h.uc.AddManualSkill(c.Context(), userID, req.SkillName, req.Proficiency)
	if err != nil {
		return mapSkillUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, view)
}

func (h *SkillHandler) DeleteSkill(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	name := c.Params("name")
	if err := h.uc.DeleteSkill(c.Context(), userID, name); err != nil {
		return mapSkillUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

// ExtractSkills runs extraction over the stored resume text plus every
// profile artifact.
func (h *SkillHandler) ExtractSkills(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	result, err := h.uc.ExtractSkills(c.Context(), userID)
	if err != nil {
		return mapSkillUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, result)
}

// IngestResume stores resume text on the profile and runs a resume-only
// extraction pass.
func (h *SkillHandler) IngestResume(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.ResumeTextRequest
	if err := c.Bind().Body(&req); err != nil {
		return bindError(err)
	}

	result, err := h.uc.IngestResumeText(c.Context(), userID, req.Text)
	if err != nil {
		return mapSkillUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, result)
}

func mapSkillUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrResumeTooShort):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Resume text too short to analyze", nil, err)
	case errors.Is(err, usecase.ErrNoEvidence):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "No resume text or artifacts to extract from", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
