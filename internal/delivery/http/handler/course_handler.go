package handler

import (
	"errors"
	"strings"

	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/pkg/response"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CourseHandler struct {
	uc usecase.CourseUsecase
}

func NewCourseHandler(uc usecase.CourseUsecase) *CourseHandler {
	return &CourseHandler{uc: uc}
}

func (h *CourseHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/courses/recommendations", h.Recommendations)
}

// Recommendations matches catalog courses against the caller's latest
// gap report. A blank role falls back to the profile's target role.
func (h *CourseHandler) Recommendations(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	role := strings.TrimSpace(c.Query("role"))

	out, err := h.uc.Recommendations(c.Context(), userID, role)
	if err != nil {
		return mapCourseUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapCourseUsecaseError(err error) error {
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
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
