package handler

import (
	"errors"

	"career-compass/internal/delivery/http/dto"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/domain/artifact"
	"career-compass/internal/pkg/response"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ArtifactHandler struct {
	uc usecase.ArtifactUsecase
}

func NewArtifactHandler(uc usecase.ArtifactUsecase) *ArtifactHandler {
	return &ArtifactHandler{uc: uc}
}

func (h *ArtifactHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/users/me/courses", h.AddCourse)
	r.Get("/users/me/courses", h.ListCourses)
	r.Delete("/users/me/courses/:id", h.DeleteCourse)

	r.Post("/users/me/projects", h.AddProject)
	r.Get("/users/me/projects", h.ListProjects)
	r.Delete("/users/me/projects/:id", h.DeleteProject)

	r.Post("/users/me/certifications", h.AddCertification)
	r.Get("/users/me/certifications", h.ListCertifications)
	r.Delete("/users/me/certifications/:id", h.DeleteCertification)

	r.Post("/users/me/experiences", h.AddExperience)
	r.Get("/users/me/experiences", h.ListExperience)
	r.Delete("/users/me/experiences/:id", h.DeleteExperience)
}

func (h *ArtifactHandler) AddCourse(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.CreateCourseRequest
	if err := c.Bind().Body(&req); err != nil {
		return bindError(err)
	}

	created, err := h.uc.AddCourse(c.Context(), artifact.Course{
		UserID:         userID,
		CourseName:     req.CourseName,
		Platform:       req.Platform,
		Instructor:     req.Instructor,
		Grade:          req.Grade,
		CompletionDate: req.CompletionDate,
		Duration:       req.Duration,
		Description:    req.Description,
		CertificateURL: req.CertificateURL,
	})
	if err != nil {
		return mapArtifactUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, courseResponse(created))
}

func (h *ArtifactHandler) ListCourses(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListCourses(c.Context(), userID)
	if err != nil {
		return mapArtifactUsecaseError(err)
	}

	out := make([]dto.CourseResponse, 0, len(items))
	for _, it := range items {
		out = append(out, courseResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ArtifactHandler) DeleteCourse(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	id, err := parsePathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteCourse(c.Context(), id, userID); err != nil {
		return mapArtifactUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ArtifactHandler) AddProject(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.CreateProjectRequest
	if err := c.Bind().Body(&req); err != nil {
		return bindError(err)
	}

	created, err := h.uc.AddProject(c.Context(), artifact.Project{
		UserID:       userID,
		ProjectName:  req.ProjectName,
		Description:  req.Description,
		TechStack:    req.TechStack,
		Role:         req.Role,
		TeamSize:     req.TeamSize,
		Duration:     req.Duration,
		GithubLink:   req.GithubLink,
		DeployedLink: req.DeployedLink,
		ProjectType:  req.ProjectType,
		Impact:       req.Impact,
	})
	if err != nil {
		return mapArtifactUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, projectResponse(created))
}

func (h *ArtifactHandler) ListProjects(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListProjects(c.Context(), userID)
	if err != nil {
		return mapArtifactUsecaseError(err)
	}

	out := make([]dto.ProjectResponse, 0, len(items))
	for _, it := range items {
		out = append(out, projectResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ArtifactHandler) DeleteProject(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	id, err := parsePathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProject(c.Context(), id, userID); err != nil {
		return mapArtifactUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ArtifactHandler) AddCertification(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.CreateCertificationRequest
	if err := c.Bind().Body(&req); err != nil {
		return bindError(err)
	}

	created, err := h.uc.AddCertification(c.Context(), artifact.Certification{
		UserID:              userID,
		CertificationName:   req.CertificationName,
		IssuingOrganization: req.IssuingOrganization,
		IssueDate:           req.IssueDate,
		ExpiryDate:          req.ExpiryDate,
		CredentialID:        req.CredentialID,
		CredentialURL:       req.CredentialURL,
	})
	if err != nil {
		return mapArtifactUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, certificationResponse(created))
}

func (h *ArtifactHandler) ListCertifications(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListCertifications(c.Context(), userID)
	if err != nil {
		return mapArtifactUsecaseError(err)
	}

	out := make([]dto.CertificationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, certificationResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ArtifactHandler) DeleteCertification(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	id, err := parsePathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteCertification(c.Context(), id, userID); err != nil {
		return mapArtifactUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ArtifactHandler) AddExperience(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.CreateExperienceRequest
	if err := c.Bind().Body(&req); err != nil {
		return bindError(err)
	}

	created, err := h.uc.AddExperience(c.Context(), artifact.Experience{
		UserID:           userID,
		CompanyName:      req.CompanyName,
		JobTitle:         req.JobTitle,
		EmploymentType:   req.EmploymentType,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Location:         req.Location,
		Description:      req.Description,
		TechnologiesUsed: req.TechnologiesUsed,
	})
	if err != nil {
		return mapArtifactUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, experienceResponse(created))
}

func (h *ArtifactHandler) ListExperience(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListExperience(c.Context(), userID)
	if err != nil {
		return mapArtifactUsecaseError(err)
	}

	out := make([]dto.ExperienceResponse, 0, len(items))
	for _, it := range items {
		out = append(out, experienceResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ArtifactHandler) DeleteExperience(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	id, err := parsePathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteExperience(c.Context(), id, userID); err != nil {
		return mapArtifactUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func courseResponse(a artifact.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:             a.ID,
		CourseName:     a.CourseName,
		Platform:       a.Platform,
		Instructor:     a.Instructor,
		Grade:          a.Grade,
		CompletionDate: a.CompletionDate,
		Duration:       a.Duration,
		Description:    a.Description,
		CertificateURL: a.CertificateURL,
		CreatedAt:      a.CreatedAt,
	}
}

func projectResponse(a artifact.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:           a.ID,
		ProjectName:  a.ProjectName,
		Description:  a.Description,
		TechStack:    a.TechStack,
		Role:         a.Role,
		TeamSize:     a.TeamSize,
		Duration:     a.Duration,
		GithubLink:   a.GithubLink,
		DeployedLink: a.DeployedLink,
		ProjectType:  a.ProjectType,
		Impact:       a.Impact,
		CreatedAt:    a.CreatedAt,
	}
}

func certificationResponse(a artifact.Certification) dto.CertificationResponse {
	return dto.CertificationResponse{
		ID:                  a.ID,
		CertificationName:   a.CertificationName,
		IssuingOrganization: a.IssuingOrganization,
		IssueDate:           a.IssueDate,
		ExpiryDate:          a.ExpiryDate,
		CredentialID:        a.CredentialID,
		CredentialURL:       a.CredentialURL,
		CreatedAt:           a.CreatedAt,
	}
}

func experienceResponse(a artifact.Experience) dto.ExperienceResponse {
	return dto.ExperienceResponse{
		ID:               a.ID,
		CompanyName:      a.CompanyName,
		JobTitle:         a.JobTitle,
		EmploymentType:   a.EmploymentType,
		StartDate:        a.StartDate,
		EndDate:          a.EndDate,
		Location:         a.Location,
		Description:      a.Description,
		TechnologiesUsed: a.TechnologiesUsed,
		CreatedAt:        a.CreatedAt,
	}
}

func mapArtifactUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrArtifactNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrArtifactForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
