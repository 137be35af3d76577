package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"career-compass/internal/domain/market"
	"career-compass/internal/extract"
	"career-compass/internal/infrastructure/ingest"
	"career-compass/internal/repository"
)

type mockProvider struct {
	available bool
	stats     []market.Stat
	err       error
	calls     int
}

func (m *mockProvider) Available() bool { return m.available }

func (m *mockProvider) GenerateMarketRequirements(context.Context, string, string) ([]market.Stat, error) {
	m.calls++
	return m.stats, m.err
}

type mockTrigger struct {
	taskID string
	err    error
	calls  int
}

func (m *mockTrigger) TriggerCollect(context.Context, string, string) (string, error) {
	m.calls++
	return m.taskID, m.err
}

func newMarketUC(markets *mockMarketRepo, postings *mockPostingRepo, provider MarketProvider, collector ingest.TriggerClient, cache Cache) *Market {
	return NewMarketUsecase(markets, postings, extract.NewExtractor(), provider, collector, nil, cache)
}

func TestMarketUsecase_Requirements_InvalidRole(t *testing.T) {
	uc := newMarketUC(&mockMarketRepo{}, &mockPostingRepo{}, nil, nil, nil)

	for _, role := range []string{"", "   "} {
		if _, err := uc.Requirements(context.Background(), role, ""); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("role=%q: expected ErrInvalidInput, got %v", role, err)
		}
	}
}

func TestMarketUsecase_Requirements_ServesStoredSnapshot(t *testing.T) {
	markets := &mockMarketRepo{byRole: map[string]repository.RoleMarket{
		"data-analyst": {
			TargetRole:   "data-analyst",
			Stats:        []market.Stat{{Name: "python", Frequency: 0.8, Level: "critical", AvgProficiency: 0.7}},
			JobsAnalyzed: 40,
			Source:       MarketSourcePostings,
			AnalyzedAt:   time.Now().UTC(),
		},
	}}
	cache := newMemCache()
	uc := newMarketUC(markets, &mockPostingRepo{}, nil, nil, cache)

	got, err := uc.Requirements(context.Background(), "Data Analyst", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Source != MarketSourcePostings || got.JobsAnalyzed != 40 {
		t.Fatalf("expected stored snapshot, got %+v", got)
	}
	if len(got.Skills) != 1 || got.Skills[0].Name != "python" {
		t.Fatalf("unexpected skills: %+v", got.Skills)
	}
	if !cache.has(marketCacheKey("data-analyst", "")) {
		t.Fatalf("snapshot should be cached")
	}
}

func TestMarketUsecase_Requirements_GeneratesWithLLM(t *testing.T) {
	markets := &mockMarketRepo{}
	provider := &mockProvider{
		available: true,
		stats:     []market.Stat{{Name: "sql", Frequency: 0.9, Level: "critical", AvgProficiency: 0.7}},
	}
	uc := newMarketUC(markets, &mockPostingRepo{}, provider, nil, nil)

	got, err := uc.Requirements(context.Background(), "data-analyst", "jakarta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Source != MarketSourceLLM {
		t.Fatalf("expected llm source, got %q", got.Source)
	}
	if provider.calls != 1 {
		t.Fatalf("expected one provider call, got %d", provider.calls)
	}
	if len(markets.replaced) != 1 || markets.replaced[0].source != MarketSourceLLM {
		t.Fatalf("llm snapshot should be persisted, got %+v", markets.replaced)
	}
}

func TestMarketUsecase_Requirements_FallsBackToSample(t *testing.T) {
	markets := &mockMarketRepo{}
	uc := newMarketUC(markets, &mockPostingRepo{}, nil, nil, nil)

	got, err := uc.Requirements(context.Background(), "data-analyst", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Source != MarketSourceSample {
		t.Fatalf("expected sample source, got %q", got.Source)
	}
	if len(got.Skills) == 0 {
		t.Fatalf("sample snapshot should never be empty")
	}
	if len(markets.replaced) != 0 {
		t.Fatalf("sample data must not be persisted, got %+v", markets.replaced)
	}
	if len(got.Profile()) == 0 {
		t.Fatalf("sample snapshot should produce a scoreable profile")
	}
}

func TestMarketUsecase_Requirements_CacheHit(t *testing.T) {
	cache := newMemCache()
	cached := RoleRequirements{
		TargetRole: "data-analyst",
		Source:     MarketSourcePostings,
		Skills:     []market.Stat{{Name: "python", Frequency: 0.8, Level: "critical"}},
	}
	if err := cache.SetJSON(context.Background(), marketCacheKey("data-analyst", ""), cached, time.Minute); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	markets := &mockMarketRepo{findErr: errors.New("db down")}
	uc := newMarketUC(markets, &mockPostingRepo{}, nil, nil, cache)

	got, err := uc.Requirements(context.Background(), "data-analyst", "")
	if err != nil {
		t.Fatalf("cache hit should not touch the repo: %v", err)
	}
	if got.Source != MarketSourcePostings || len(got.Skills) != 1 {
		t.Fatalf("unexpected cached snapshot: %+v", got)
	}
}

func TestMarketUsecase_AnalyzeRole_NoPostings(t *testing.T) {
	uc := newMarketUC(&mockMarketRepo{}, &mockPostingRepo{}, nil, nil, nil)

	if _, err := uc.AnalyzeRole(context.Background(), "data-analyst"); !errors.Is(err, ErrNoMarketData) {
		t.Fatalf("expected ErrNoMarketData, got %v", err)
	}
}

func TestMarketUsecase_AnalyzeRole_BuildsSnapshotFromPostings(t *testing.T) {
	markets := &mockMarketRepo{}
	postings := &mockPostingRepo{descriptions: []string{
		"Looking for a reporting analyst. python scripting and sql queries used daily across hospital teams.",
		"python pipelines keep our clinical warehouse loaded and current for analysts.",
	}}
	uc := newMarketUC(markets, postings, nil, nil, nil)

	got, err := uc.AnalyzeRole(context.Background(), "Data Analyst")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Source != MarketSourcePostings || got.JobsAnalyzed != 2 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	if len(got.Skills) == 0 || got.Skills[0].Name != "python" {
		t.Fatalf("python should lead the stats, got %+v", got.Skills)
	}
	if got.Skills[0].Level != string(market.CategoryCritical) {
		t.Fatalf("a skill required by every posting should be critical, got %q", got.Skills[0].Level)
	}
	if len(markets.replaced) != 1 || markets.replaced[0].role != "data-analyst" || markets.replaced[0].jobs != 2 {
		t.Fatalf("snapshot not persisted: %+v", markets.replaced)
	}
}

func TestMarketUsecase_Collect_NoCollector(t *testing.T) {
	uc := newMarketUC(&mockMarketRepo{}, &mockPostingRepo{}, nil, nil, nil)

	if _, err := uc.Collect(context.Background(), "data-analyst", ""); !errors.Is(err, ErrCollectorUnavailable) {
		t.Fatalf("expected ErrCollectorUnavailable, got %v", err)
	}
}

func TestMarketUsecase_Collect_TriggersRun(t *testing.T) {
	trigger := &mockTrigger{taskID: "task-7"}
	uc := newMarketUC(&mockMarketRepo{}, &mockPostingRepo{}, nil, trigger, nil)

	taskID, err := uc.Collect(context.Background(), "Data Analyst", "jakarta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if taskID != "task-7" || trigger.calls != 1 {
		t.Fatalf("expected one trigger call returning task-7, got %q after %d calls", taskID, trigger.calls)
	}
}
