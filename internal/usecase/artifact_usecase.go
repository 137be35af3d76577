package usecase

import (
	"context"
	"errors"
	"strings"

	"career-compass/internal/domain/artifact"
	"career-compass/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrArtifactNotFound  = errors.New("artifact not found")
	ErrArtifactForbidden = errors.New("artifact belongs to another user")
)

// ArtifactUsecase is the owned CRUD surface for the evidence records a
// profile is built from. Every list and delete is scoped to the
// authenticated user.
type ArtifactUsecase interface {
	AddCourse(ctx context.Context, c artifact.Course) (artifact.Course, error)
	ListCourses(ctx context.Context, userID uuid.UUID) ([]artifact.Course, error)
	DeleteCourse(ctx context.Context, id, userID uuid.UUID) error

	AddProject(ctx context.Context, p artifact.Project) (artifact.Project, error)
	ListProjects(ctx context.Context, userID uuid.UUID) ([]artifact.Project, error)
	DeleteProject(ctx context.Context, id, userID uuid.UUID) error

	AddCertification(ctx context.Context, c artifact.Certification) (artifact.Certification, error)
	ListCertifications(ctx context.Context, userID uuid.UUID) ([]artifact.Certification, error)
	DeleteCertification(ctx context.Context, id, userID uuid.UUID) error

	AddExperience(ctx context.Context, e artifact.Experience) (artifact.Experience, error)
	ListExperience(ctx context.Context, userID uuid.UUID) ([]artifact.Experience, error)
	DeleteExperience(ctx context.Context, id, userID uuid.UUID) error
}

type Artifact struct {
	repo repository.ArtifactRepository
}

func NewArtifactUsecase(repo repository.ArtifactRepository) *Artifact {
	return &Artifact{repo: repo}
}

func (u *Artifact) AddCourse(ctx context.Context, c artifact.Course) (artifact.Course, error) {
	c.CourseName = strings.TrimSpace(c.CourseName)
	if c.CourseName == "" || c.UserID == uuid.Nil {
		return artifact.Course{}, ErrInvalidInput
	}
	created, err := u.repo.CreateCourse(ctx, c)
	if err != nil {
		return artifact.Course{}, ErrInternal
	}
	return created, nil
}

func (u *Artifact) ListCourses(ctx context.Context, userID uuid.UUID) ([]artifact.Course, error) {
	items, err := u.repo.ListCourses(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Artifact) DeleteCourse(ctx context.Context, id, userID uuid.UUID) error {
	return u.mapDeleteErr(u.repo.DeleteCourse(ctx, id, userID))
}

func (u *Artifact) AddProject(ctx context.Context, p artifact.Project) (artifact.Project, error) {
	p.ProjectName = strings.TrimSpace(p.ProjectName)
	if p.ProjectName == "" || p.UserID == uuid.Nil {
		return artifact.Project{}, ErrInvalidInput
	}
	created, err := u.repo.CreateProject(ctx, p)
	if err != nil {
		return artifact.Project{}, ErrInternal
	}
	return created, nil
}

func (u *Artifact) ListProjects(ctx context.Context, userID uuid.UUID) ([]artifact.Project, error) {
	items, err := u.repo.ListProjects(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Artifact) DeleteProject(ctx context.Context, id, userID uuid.UUID) error {
	return u.mapDeleteErr(u.repo.DeleteProject(ctx, id, userID))
}

func (u *Artifact) AddCertification(ctx context.Context, c artifact.Certification) (artifact.Certification, error) {
	c.CertificationName = strings.TrimSpace(c.CertificationName)
	if c.CertificationName == "" || c.UserID == uuid.Nil {
		return artifact.Certification{}, ErrInvalidInput
	}
	created, err := u.repo.CreateCertification(ctx, c)
	if err != nil {
		return artifact.Certification{}, ErrInternal
	}
	return created, nil
}

func (u *Artifact) ListCertifications(ctx context.Context, userID uuid.UUID) ([]artifact.Certification, error) {
	items, err := u.repo.ListCertifications(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Artifact) DeleteCertification(ctx context.Context, id, userID uuid.UUID) error {
	return u.mapDeleteErr(u.repo.DeleteCertification(ctx, id, userID))
}

func (u *Artifact) AddExperience(ctx context.Context, e artifact.Experience) (artifact.Experience, error) {
	e.JobTitle = strings.TrimSpace(e.JobTitle)
	if e.JobTitle == "" || e.UserID == uuid.Nil {
		return artifact.Experience{}, ErrInvalidInput
	}
	created, err := u.repo.CreateExperience(ctx, e)
	if err != nil {
		return artifact.Experience{}, ErrInternal
	}
	return created, nil
}

func (u *Artifact) ListExperience(ctx context.Context, userID uuid.UUID) ([]artifact.Experience, error) {
	items, err := u.repo.ListExperience(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Artifact) DeleteExperience(ctx context.Context, id, userID uuid.UUID) error {
	return u.mapDeleteErr(u.repo.DeleteExperience(ctx, id, userID))
}

func (u *Artifact) mapDeleteErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrArtifactNotFound):
		return ErrArtifactNotFound
	case errors.Is(err, repository.ErrArtifactForbidden):
		return ErrArtifactForbidden
	default:
		return ErrInternal
	}
}
