package handler

import (
	"errors"

	"career-compass/internal/delivery/http/dto"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/pkg/response"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type GitHubHandler struct {
	uc usecase.GitHubUsecase
}

func NewGitHubHandler(uc usecase.GitHubUsecase) *GitHubHandler {
	return &GitHubHandler{uc: uc}
}

func (h *GitHubHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/github/analyze", h.Analyze)
}

// Analyze scans the public repositories behind a GitHub profile URL and
// merges the detected languages and topics into the caller's skills.
func (h *GitHubHandler) Analyze(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.GitHubAnalyzeRequest
	if err := c.Bind().Body(&req); err != nil {
		return bindError(err)
	}

	out, err := h.uc.Analyze(c.Context(), userID, req.GithubURL)
	if err != nil {
		return mapGitHubUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapGitHubUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidGitHubURL):
		return middleware.NewAppError(fiber.StatusBadRequest, "Not a valid GitHub profile URL", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrGitHubUnavailable):
		return middleware.NewAppError(fiber.StatusBadGateway, "GitHub could not be reached", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
