package usecase

import (
	"context"

	"career-compass/internal/domain/user"
	"career-compass/internal/repository"
	ucuser "career-compass/internal/usecase/user"

	"github.com/google/uuid"
)

// UserUsecase wraps the profile service with cache invalidation: a profile
// update drops every cached read keyed to that user.
type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (ucuser.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in ucuser.UpdateProfileInput) (ucuser.Profile, error)
	Statistics(ctx context.Context, userID uuid.UUID) (ucuser.Statistics, error)
}

type User struct {
	svc   *ucuser.Service
	cache Cache
}

func NewUserUsecase(users user.Repository, artifacts repository.ArtifactRepository, reports repository.GapReportRepository, cache Cache) *User {
	return &User{svc: ucuser.NewService(users, artifacts, reports), cache: cache}
}

func (u *User) GetProfile(ctx context.Context, userID uuid.UUID) (ucuser.Profile, error) {
	return u.svc.GetProfile(ctx, userID)
}

func (u *User) UpdateProfile(ctx context.Context, userID uuid.UUID, in ucuser.UpdateProfileInput) (ucuser.Profile, error) {
	p, err := u.svc.UpdateProfile(ctx, userID, in)
	if err != nil {
		return ucuser.Profile{}, err
	}
	if u.cache != nil {
		_ = u.cache.InvalidateUserScope(ctx, userID.String())
	}
	return p, nil
}

func (u *User) Statistics(ctx context.Context, userID uuid.UUID) (ucuser.Statistics, error) {
	return u.svc.Statistics(ctx, userID)
}
