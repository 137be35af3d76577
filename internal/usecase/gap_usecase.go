package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"career-compass/internal/domain/analysis"
	"career-compass/internal/domain/gap"
	"career-compass/internal/domain/skill"
	"career-compass/internal/domain/user"
	"career-compass/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrNoSkillsOnProfile = errors.New("no skills extracted yet")
	ErrReportNotFound    = errors.New("gap report not found")
)

// GapAnalysis is one scored run: the full report, its dashboard summary and
// where the market side came from.
type GapAnalysis struct {
	ReportID     uuid.UUID   `json:"report_id"`
	TargetRole   string      `json:"target_role"`
	MarketSource string      `json:"market_source"`
	Report       gap.Report  `json:"report"`
	Summary      gap.Summary `json:"summary"`
	CreatedAt    time.Time   `json:"created_at"`
}

type GapUsecase interface {
	Analyze(ctx context.Context, userID uuid.UUID, role, location string) (GapAnalysis, error)
	Latest(ctx context.Context, userID uuid.UUID) (analysis.StoredReport, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]analysis.StoredReport, error)
}

type Gap struct {
	users            user.Repository
	skills           repository.UserSkillRepository
	reports          repository.GapReportRepository
	market           MarketUsecase
	cache            Cache
	coveredThreshold float64
}

func NewGapUsecase(
	users user.Repository,
	skills repository.UserSkillRepository,
	reports repository.GapReportRepository,
	market MarketUsecase,
	cache Cache,
	coveredThreshold float64,
) *Gap {
	if coveredThreshold <= 0 {
		coveredThreshold = gap.DefaultCoveredThreshold
	}
	return &Gap{
		users:            users,
		skills:           skills,
		reports:          reports,
		market:           market,
		cache:            cache,
		coveredThreshold: coveredThreshold,
	}
}

// Analyze scores the user against the market profile for a role. The skill
// store and the market provider are read concurrently; the join happens in
// the pure engine. Every run is persisted for the history endpoints.
func (u *Gap) Analyze(ctx context.Context, userID uuid.UUID, role, location string) (GapAnalysis, error) {
	roleKey := skill.NormalizeName(role)
	if roleKey == "" {
		usr, err := u.users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return GapAnalysis{}, ErrUserNotFound
			}
			return GapAnalysis{}, ErrInternal
		}
		roleKey = usr.TargetRoleKey()
	}
	if roleKey == "" {
		return GapAnalysis{}, ErrInvalidInput
	}

	var (
		records   []skill.Record
		snapshot  RoleRequirements
		skillsErr error
		marketErr error
	)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		records, skillsErr = u.skills.FindByUserID(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		snapshot, marketErr = u.market.Requirements(ctx, roleKey, location)
	}()
	wg.Wait()

	if skillsErr != nil {
		return GapAnalysis{}, ErrInternal
	}
	if marketErr != nil {
		return GapAnalysis{}, marketErr
	}
	if len(records) == 0 {
		return GapAnalysis{}, ErrNoSkillsOnProfile
	}

	report := gap.ComputeReport(skill.ProficiencyMap(records), snapshot.Profile(), u.coveredThreshold)

	stored, err := u.reports.Save(ctx, userID, roleKey, report)
	if err != nil {
		return GapAnalysis{}, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, latestGapCacheKey(userID), stored, userCacheTTL)
	}

	return GapAnalysis{
		ReportID:     stored.ID,
		TargetRole:   stored.TargetRole,
		MarketSource: snapshot.Source,
		Report:       stored.Report,
		Summary:      gap.Summarize(stored.Report),
		CreatedAt:    stored.CreatedAt,
	}, nil
}

func (u *Gap) Latest(ctx context.Context, userID uuid.UUID) (analysis.StoredReport, error) {
	key := latestGapCacheKey(userID)
	if u.cache != nil {
		var cached analysis.StoredReport
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	stored, err := u.reports.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrGapReportNotFound) {
			return analysis.StoredReport{}, ErrReportNotFound
		}
		return analysis.StoredReport{}, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, stored, userCacheTTL)
	}
	return stored, nil
}

func (u *Gap) History(ctx context.Context, userID uuid.UUID, limit int) ([]analysis.StoredReport, error) {
	if limit < 0 {
		return nil, ErrInvalidInput
	}

	items, err := u.reports.History(ctx, userID, limit)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}
