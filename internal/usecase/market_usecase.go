package usecase

import (
	"context"
	"errors"
	"time"

	"career-compass/internal/domain/market"
	"career-compass/internal/domain/skill"
	"career-compass/internal/extract"
	"career-compass/internal/infrastructure/ingest"
	"career-compass/internal/repository"
	ucmarket "career-compass/internal/usecase/market"
)

var (
	ErrNoMarketData         = errors.New("no postings collected for role")
	ErrCollectorUnavailable = errors.New("posting collector not configured")
)

// Provenance labels for a served market snapshot.
const (
	MarketSourcePostings = "postings"
	MarketSourceLLM      = "llm"
	MarketSourceSample   = "sample"
)

const marketAnalysisPostingLimit = 100

// MarketProvider is the LLM slice that can synthesize role requirements
// when no postings have been collected yet.
type MarketProvider interface {
	Available() bool
	GenerateMarketRequirements(ctx context.Context, role, location string) ([]market.Stat, error)
}

// RoleRequirements is one market snapshot for a target role, tagged with
// where it came from.
type RoleRequirements struct {
	TargetRole   string        `json:"target_role"`
	Location     string        `json:"location,omitempty"`
	Source       string        `json:"source"`
	JobsAnalyzed int           `json:"jobs_analyzed"`
	AnalyzedAt   time.Time     `json:"analyzed_at"`
	Skills       []market.Stat `json:"skills"`
}

// Profile converts the snapshot into the normalized requirement set the gap
// engine scores against.
func (r RoleRequirements) Profile() []market.Requirement {
	return market.NormalizeProfile(market.Requirements(r.Skills))
}

type MarketUsecase interface {
	Requirements(ctx context.Context, role, location string) (RoleRequirements, error)
	AnalyzeRole(ctx context.Context, role string) (RoleRequirements, error)
	Collect(ctx context.Context, role, location string) (string, error)
}

type Market struct {
	markets   repository.MarketRepository
	postings  repository.PostingRepository
	extractor *extract.Extractor
	provider  MarketProvider
	collector ingest.TriggerClient
	freshness *ucmarket.FreshnessService
	cache     Cache
}

func NewMarketUsecase(
	markets repository.MarketRepository,
	postings repository.PostingRepository,
	extractor *extract.Extractor,
	provider MarketProvider,
	collector ingest.TriggerClient,
	freshness *ucmarket.FreshnessService,
	cache Cache,
) *Market {
	return &Market{
		markets:   markets,
		postings:  postings,
		extractor: extractor,
		provider:  provider,
		collector: collector,
		freshness: freshness,
		cache:     cache,
	}
}

// Requirements resolves the market profile for a role through the fallback
// chain: cached snapshot, stored snapshot, LLM generation, built-in sample.
// The result is never empty.
func (u *Market) Requirements(ctx context.Context, role, location string) (RoleRequirements, error) {
	roleKey := skill.NormalizeName(role)
	if roleKey == "" {
		return RoleRequirements{}, ErrInvalidInput
	}

	key := marketCacheKey(roleKey, location)
	if u.cache != nil {
		var cached RoleRequirements
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	u.freshness.EnsureFresh(ctx, roleKey, location)

	result, err := u.resolve(ctx, roleKey, location)
	if err != nil {
		return RoleRequirements{}, err
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, result, marketCacheTTL)
	}
	return result, nil
}

func (u *Market) resolve(ctx context.Context, roleKey, location string) (RoleRequirements, error) {
	stored, err := u.markets.FindByRole(ctx, roleKey)
	switch {
	case err == nil:
		return RoleRequirements{
			TargetRole:   roleKey,
			Location:     location,
			Source:       stored.Source,
			JobsAnalyzed: stored.JobsAnalyzed,
			AnalyzedAt:   stored.AnalyzedAt,
			Skills:       stored.Stats,
		}, nil
	case errors.Is(err, repository.ErrMarketNotFound):
	default:
		return RoleRequirements{}, ErrInternal
	}

	if u.provider != nil && u.provider.Available() {
		stats, err := u.provider.GenerateMarketRequirements(ctx, roleKey, location)
		if err == nil && len(stats) > 0 {
			if err := u.markets.ReplaceForRole(ctx, roleKey, stats, 0, MarketSourceLLM); err != nil {
				return RoleRequirements{}, ErrInternal
			}
			return RoleRequirements{
				TargetRole: roleKey,
				Location:   location,
				Source:     MarketSourceLLM,
				AnalyzedAt: time.Now().UTC(),
				Skills:     stats,
			}, nil
		}
	}

	return RoleRequirements{
		TargetRole: roleKey,
		Location:   location,
		Source:     MarketSourceSample,
		AnalyzedAt: time.Now().UTC(),
		Skills:     market.SampleStats(),
	}, nil
}

// AnalyzeRole rebuilds the stored snapshot for a role from collected
// postings and replaces whatever source served it before.
func (u *Market) AnalyzeRole(ctx context.Context, role string) (RoleRequirements, error) {
	roleKey := skill.NormalizeName(role)
	if roleKey == "" {
		return RoleRequirements{}, ErrInvalidInput
	}

	descriptions, err := u.postings.DescriptionsByRole(ctx, roleKey, marketAnalysisPostingLimit)
	if err != nil {
		return RoleRequirements{}, ErrInternal
	}
	if len(descriptions) == 0 {
		return RoleRequirements{}, ErrNoMarketData
	}

	mentions := make([][]market.Mention, 0, len(descriptions))
	for _, desc := range descriptions {
		mentions = append(mentions, market.AnalyzePosting(desc, u.extractor.Names))
	}

	stats := market.Aggregate(mentions)
	if len(stats) == 0 {
		return RoleRequirements{}, ErrNoMarketData
	}

	if err := u.markets.ReplaceForRole(ctx, roleKey, stats, len(descriptions), MarketSourcePostings); err != nil {
		return RoleRequirements{}, ErrInternal
	}

	result := RoleRequirements{
		TargetRole:   roleKey,
		Source:       MarketSourcePostings,
		JobsAnalyzed: len(descriptions),
		AnalyzedAt:   time.Now().UTC(),
		Skills:       stats,
	}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, marketCacheKey(roleKey, ""), result, marketCacheTTL)
	}
	return result, nil
}

// Collect fires a posting-collection run on the ingest service.
func (u *Market) Collect(ctx context.Context, role, location string) (string, error) {
	roleKey := skill.NormalizeName(role)
	if roleKey == "" {
		return "", ErrInvalidInput
	}
	if u.collector == nil {
		return "", ErrCollectorUnavailable
	}

	taskID, err := u.collector.TriggerCollect(ctx, roleKey, location)
	if err != nil {
		return "", ErrInternal
	}
	return taskID, nil
}
