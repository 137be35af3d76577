package handler

import (
	"errors"

	"career-compass/internal/delivery/http/dto"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/pkg/response"
	"career-compass/internal/usecase"
	ucuser "career-compass/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/users/me", h.GetProfile)
	r.Put("/users/me", h.UpdateProfile)
	r.Get("/users/me/statistics", h.Statistics)
}

func (h *UserHandler) GetProfile(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	p, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, profileResponse(p))
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return bindError(err)
	}

	p, err := h.uc.UpdateProfile(c.Context(), userID, ucuser.UpdateProfileInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Education:      req.Education,
		University:     req.University,
		GraduationYear: req.GraduationYear,
		Location:       req.Location,
		TargetRole:     req.TargetRole,
		TargetSector:   req.TargetSector,
		Phone:          req.Phone,
		LinkedinURL:    req.LinkedinURL,
		GithubURL:      req.GithubURL,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, profileResponse(p))
}

func (h *UserHandler) Statistics(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	stats, err := h.uc.Statistics(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, stats)
}

func profileResponse(p ucuser.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		User:              dto.NewUserResponse(p.User),
		ProfileCompletion: p.Completion,
		Counts:            p.Counts,
	}
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucuser.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, ucuser.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucuser.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
