package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"career-compass/internal/domain/user"
	"career-compass/internal/repository"
)

var (
	ErrNotFound               = errors.New("user not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInternal               = errors.New("internal error")
)

// Profile is the user record together with the derived completion score.
type Profile struct {
	User       user.User           `json:"user"`
	Completion float64             `json:"profile_completion"`
	Counts     user.ArtifactCounts `json:"counts"`
}

// Statistics is the dashboard block: completion, artifact counts and the
// readiness of the most recent gap analysis, when one exists.
type Statistics struct {
	Completion     float64             `json:"profile_completion"`
	Counts         user.ArtifactCounts `json:"counts"`
	LastReadiness  *float64            `json:"last_readiness,omitempty"`
	LastAnalyzedAt *time.Time          `json:"last_analyzed_at,omitempty"`
}

// UpdateProfileInput carries a partial update. Nil fields keep their stored
// value.
type UpdateProfileInput struct {
	Name           *string
	Email          *string
	Password       *string
	Education      *string
	University     *string
	GraduationYear *int
	Location       *string
	TargetRole     *string
	TargetSector   *string
	Phone          *string
	LinkedinURL    *string
	GithubURL      *string
}

type Service struct {
	users     user.Repository
	artifacts repository.ArtifactRepository
	reports   repository.GapReportRepository
}

func NewService(users user.Repository, artifacts repository.ArtifactRepository, reports repository.GapReportRepository) *Service {
	return &Service{users: users, artifacts: artifacts, reports: reports}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (Profile, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, ErrInternal
	}
	return s.buildProfile(ctx, usr)
}

func (s *Service) Statistics(ctx context.Context, userID uuid.UUID) (Statistics, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return Statistics{}, err
	}

	stats := Statistics{Completion: p.Completion, Counts: p.Counts}

	last, err := s.reports.Latest(ctx, userID)
	if err == nil {
		readiness := last.OverallReadiness
		analyzedAt := last.CreatedAt
		stats.LastReadiness = &readiness
		stats.LastAnalyzedAt = &analyzedAt
	} else if !errors.Is(err, repository.ErrGapReportNotFound) {
		return Statistics{}, ErrInternal
	}

	return stats, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (Profile, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, ErrInternal
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Profile{}, ErrInvalidInput
		}
		usr.Name = name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return Profile{}, ErrInvalidInput
		}
		usr.Email = email
	}
	if in.Password != nil {
		pw := strings.TrimSpace(*in.Password)
		if len(pw) < 8 {
			return Profile{}, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			return Profile{}, ErrInternal
		}
		usr.PasswordHash = string(hash)
	}
	if in.GraduationYear != nil {
		year := *in.GraduationYear
		if year != 0 && (year < 1900 || year > 2100) {
			return Profile{}, ErrInvalidInput
		}
		usr.GraduationYear = year
	}

	usr.Education = applyString(usr.Education, in.Education)
	usr.University = applyString(usr.University, in.University)
	usr.Location = applyString(usr.Location, in.Location)
	usr.TargetRole = applyString(usr.TargetRole, in.TargetRole)
	usr.TargetSector = applyString(usr.TargetSector, in.TargetSector)
	usr.Phone = applyString(usr.Phone, in.Phone)
	usr.LinkedinURL = applyString(usr.LinkedinURL, in.LinkedinURL)
	usr.GithubURL = applyString(usr.GithubURL, in.GithubURL)

	if err := s.users.Update(ctx, usr); err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			return Profile{}, ErrEmailAlreadyRegistered
		case errors.Is(err, user.ErrNotFound):
			return Profile{}, ErrNotFound
		default:
			return Profile{}, ErrInternal
		}
	}

	updated, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, ErrInternal
	}
	return s.buildProfile(ctx, updated)
}

func (s *Service) buildProfile(ctx context.Context, usr user.User) (Profile, error) {
	counts, err := s.artifacts.CountByUser(ctx, usr.ID)
	if err != nil {
		return Profile{}, ErrInternal
	}
	return Profile{
		User:       sanitizeUser(usr),
		Completion: usr.ProfileCompletion(counts),
		Counts:     counts,
	}, nil
}

func applyString(current string, in *string) string {
	if in == nil {
		return current
	}
	return strings.TrimSpace(*in)
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
