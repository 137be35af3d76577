package usecase

import (
	"context"
	"errors"

	"career-compass/internal/domain/roadmap"
	"career-compass/internal/domain/skill"
	"career-compass/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrDomainNotFound    = errors.New("roadmap domain not found")
	ErrNoRoadmapSelected = errors.New("no roadmap selected")
	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrInvalidStatus     = errors.New("invalid milestone status")
)

type RoadmapUsecase interface {
	ListDomains(ctx context.Context) ([]roadmap.Domain, error)
	SelectDomain(ctx context.Context, userID uuid.UUID, domainID string) (roadmap.Selection, bool, error)
	GetRoadmap(ctx context.Context, userID uuid.UUID, domainID string) (roadmap.View, error)
	UpdateMilestone(ctx context.Context, userID uuid.UUID, milestoneID, status string) (roadmap.Progress, error)
	AbandonDomain(ctx context.Context, userID uuid.UUID, domainID string) error
}

type Roadmap struct {
	roadmaps repository.RoadmapRepository
	skills   repository.UserSkillRepository
}

func NewRoadmapUsecase(roadmaps repository.RoadmapRepository, skills repository.UserSkillRepository) *Roadmap {
	return &Roadmap{roadmaps: roadmaps, skills: skills}
}

func (u *Roadmap) ListDomains(ctx context.Context) ([]roadmap.Domain, error) {
	return roadmap.Catalog(), nil
}

func (u *Roadmap) SelectDomain(ctx context.Context, userID uuid.UUID, domainID string) (roadmap.Selection, bool, error) {
	if _, ok := roadmap.Find(domainID); !ok {
		return roadmap.Selection{}, false, ErrDomainNotFound
	}

	sel, created, err := u.roadmaps.SelectDomain(ctx, userID, domainID)
	if err != nil {
		return roadmap.Selection{}, false, ErrInternal
	}
	return sel, created, nil
}

// GetRoadmap resolves the domain (explicit, or the user's most recent
// selection) and projects milestone progress against the current skill
// profile.
func (u *Roadmap) GetRoadmap(ctx context.Context, userID uuid.UUID, domainID string) (roadmap.View, error) {
	var sel roadmap.Selection
	if domainID != "" {
		if _, ok := roadmap.Find(domainID); !ok {
			return roadmap.View{}, ErrDomainNotFound
		}
		found, err := u.roadmaps.GetSelection(ctx, userID, domainID)
		if err != nil {
			if errors.Is(err, repository.ErrRoadmapNotFound) {
				return roadmap.View{}, ErrNoRoadmapSelected
			}
			return roadmap.View{}, ErrInternal
		}
		sel = found
	} else {
		sels, err := u.roadmaps.ListSelections(ctx, userID)
		if err != nil {
			return roadmap.View{}, ErrInternal
		}
		if len(sels) == 0 {
			return roadmap.View{}, ErrNoRoadmapSelected
		}
		sel = sels[0]
	}

	d, ok := roadmap.Find(sel.Domain)
	if !ok {
		return roadmap.View{}, ErrDomainNotFound
	}

	progress, err := u.roadmaps.ListProgress(ctx, userID, sel.Domain)
	if err != nil {
		return roadmap.View{}, ErrInternal
	}
	progressByMilestone := make(map[string]roadmap.Progress, len(progress))
	for _, p := range progress {
		progressByMilestone[p.MilestoneID] = p
	}

	records, err := u.skills.FindByUserID(ctx, userID)
	if err != nil {
		return roadmap.View{}, ErrInternal
	}

	return roadmap.BuildView(d, sel.StartedAt, progressByMilestone, skill.ProficiencyMap(records)), nil
}

// UpdateMilestone moves one milestone through its status lifecycle.
// Milestone ids are unique across the catalog, so the domain is derived
// rather than passed.
func (u *Roadmap) UpdateMilestone(ctx context.Context, userID uuid.UUID, milestoneID, status string) (roadmap.Progress, error) {
	if !roadmap.ValidStatus(status) {
		return roadmap.Progress{}, ErrInvalidStatus
	}

	var domainID string
	for _, d := range roadmap.Catalog() {
		if _, ok := d.Milestone(milestoneID); ok {
			domainID = d.ID
			break
		}
	}
	if domainID == "" {
		return roadmap.Progress{}, ErrMilestoneNotFound
	}

	if _, err := u.roadmaps.GetSelection(ctx, userID, domainID); err != nil {
		if errors.Is(err, repository.ErrRoadmapNotFound) {
			return roadmap.Progress{}, ErrNoRoadmapSelected
		}
		return roadmap.Progress{}, ErrInternal
	}

	saved, err := u.roadmaps.UpsertProgress(ctx, roadmap.Progress{
		UserID:      userID,
		Domain:      domainID,
		MilestoneID: milestoneID,
		Status:      status,
	})
	if err != nil {
		return roadmap.Progress{}, ErrInternal
	}
	return saved, nil
}

func (u *Roadmap) AbandonDomain(ctx context.Context, userID uuid.UUID, domainID string) error {
	if err := u.roadmaps.DeleteSelection(ctx, userID, domainID); err != nil {
		if errors.Is(err, repository.ErrRoadmapNotFound) {
			return ErrNoRoadmapSelected
		}
		return ErrInternal
	}
	return nil
}
