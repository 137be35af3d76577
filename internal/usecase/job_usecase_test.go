package usecase

import (
	"context"
	"errors"
	"testing"

	"career-compass/internal/domain/job"
	"career-compass/internal/extract"

	"github.com/google/uuid"
)

func newJobUC(postings *mockPostingRepo) *Job {
	return NewJobUsecase(postings, extract.NewExtractor(), nil)
}

func TestJobUsecase_Search_InvalidPagination(t *testing.T) {
	uc := newJobUC(&mockPostingRepo{})

	if _, err := uc.Search(context.Background(), job.SearchParams{Limit: -1}, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative limit, got %v", err)
	}
	if _, err := uc.Search(context.Background(), job.SearchParams{Limit: 10}, -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative offset, got %v", err)
	}
}

func TestJobUsecase_Search_ReturnsPage(t *testing.T) {
	postings := &mockPostingRepo{
		searchItems: []job.Posting{
			{ID: uuid.New(), Title: "Clinical Data Analyst"},
			{ID: uuid.New(), Title: "Reporting Analyst"},
		},
		searchTotal: 9,
	}
	uc := newJobUC(postings)

	page, err := uc.Search(context.Background(), job.SearchParams{Role: "data-analyst", Limit: 2}, 4)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(page.Items) != 2 || page.Total != 9 {
		t.Fatalf("unexpected page: %d items, total %d", len(page.Items), page.Total)
	}
	if page.Limit != 2 || page.Offset != 4 {
		t.Fatalf("page should echo its window, got limit %d offset %d", page.Limit, page.Offset)
	}
}

func TestJobUsecase_Search_ServesCachedPage(t *testing.T) {
	postings := &mockPostingRepo{
		searchItems: []job.Posting{{ID: uuid.New(), Title: "Clinical Data Analyst"}},
		searchTotal: 1,
	}
	cache := newMemCache()
	uc := NewJobUsecase(postings, extract.NewExtractor(), cache)

	first, err := uc.Search(context.Background(), job.SearchParams{Role: "Data Analyst", Limit: 5}, 0)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if first.Total != 1 {
		t.Fatalf("unexpected total %d", first.Total)
	}

	// Repo goes empty; an equivalent spelling of the filter must still hit the cache.
	postings.searchItems = nil
	postings.searchTotal = 0

	second, err := uc.Search(context.Background(), job.SearchParams{Role: "  data   analyst", Limit: 5}, 0)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if second.Total != 1 || len(second.Items) != 1 || second.Items[0].Title != "Clinical Data Analyst" {
		t.Fatalf("expected the cached page, got %d items, total %d", len(second.Items), second.Total)
	}
}

func TestJobUsecase_Get_InvalidID(t *testing.T) {
	uc := newJobUC(&mockPostingRepo{})

	if _, err := uc.Get(context.Background(), uuid.Nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for the zero id, got %v", err)
	}
}

func TestJobUsecase_Get_NotFound(t *testing.T) {
	uc := newJobUC(&mockPostingRepo{})

	if _, err := uc.Get(context.Background(), uuid.New()); !errors.Is(err, ErrPostingNotFound) {
		t.Fatalf("expected ErrPostingNotFound, got %v", err)
	}
}

func TestJobUsecase_Get_ReturnsPosting(t *testing.T) {
	id := uuid.New()
	postings := &mockPostingRepo{postings: map[uuid.UUID]job.Posting{
		id: {ID: id, Title: "Healthcare Data Analyst", Company: "Mercy General"},
	}}
	uc := newJobUC(postings)

	p, err := uc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if p.Title != "Healthcare Data Analyst" || p.Company != "Mercy General" {
		t.Fatalf("unexpected posting: %+v", p)
	}
}

func TestJobUsecase_AnalyzePosting_TooShort(t *testing.T) {
	uc := newJobUC(&mockPostingRepo{})

	if _, err := uc.AnalyzePosting(context.Background(), "   python and sql   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a fragment, got %v", err)
	}
}

func TestJobUsecase_AnalyzePosting_SplitsRequiredAndPreferred(t *testing.T) {
	uc := newJobUC(&mockPostingRepo{})
	description := "Required: python scripting for weekly reporting pipelines across the clinical group. " +
		"Preferred: tableau dashboards for the quality office with monthly refresh cycles."

	got, err := uc.AnalyzePosting(context.Background(), description)
	if err != nil {
		t.Fatalf("AnalyzePosting returned error: %v", err)
	}
	if got.SkillsFound != 2 {
		t.Fatalf("expected 2 skills, got %d: %+v", got.SkillsFound, got.Requirements)
	}

	byName := make(map[string]PostingRequirement)
	for _, r := range got.Requirements {
		byName[r.Skill] = r
	}
	python, ok := byName["python"]
	if !ok || python.Level != "required" {
		t.Fatalf("expected python as a hard requirement, got %+v", byName)
	}
	if !almostEq(python.Proficiency, 0.70) {
		t.Fatalf("expected base demand 0.70 for python, got %.2f", python.Proficiency)
	}
	tableau, ok := byName["tableau"]
	if !ok || tableau.Level != "preferred" {
		t.Fatalf("expected tableau as preferred, got %+v", byName)
	}
	if !almostEq(tableau.Proficiency, 0.70*0.8) {
		t.Fatalf("expected discounted demand for tableau, got %.2f", tableau.Proficiency)
	}
}

func TestJobUsecase_AnalyzePosting_WholeTextRequiredWithoutSections(t *testing.T) {
	uc := newJobUC(&mockPostingRepo{})
	description := "Hospital reporting group using python notebooks and sql marts for weekly census summaries."

	got, err := uc.AnalyzePosting(context.Background(), description)
	if err != nil {
		t.Fatalf("AnalyzePosting returned error: %v", err)
	}
	if got.SkillsFound != 2 {
		t.Fatalf("expected 2 skills, got %d: %+v", got.SkillsFound, got.Requirements)
	}
	for _, r := range got.Requirements {
		if r.Level != "required" {
			t.Fatalf("without sections every skill is required, got %+v", r)
		}
		if !almostEq(r.Proficiency, 0.70) {
			t.Fatalf("expected base demand 0.70, got %+v", r)
		}
	}
}

func TestJobUsecase_AnalyzePosting_ReadsSenioritySignals(t *testing.T) {
	uc := newJobUC(&mockPostingRepo{})
	description := "Senior analyst posting: requires python, 5+ years building reports for hospital finance teams."

	got, err := uc.AnalyzePosting(context.Background(), description)
	if err != nil {
		t.Fatalf("AnalyzePosting returned error: %v", err)
	}
	var python *PostingRequirement
	for i := range got.Requirements {
		if got.Requirements[i].Skill == "python" {
			python = &got.Requirements[i]
		}
	}
	if python == nil {
		t.Fatalf("python missing from %+v", got.Requirements)
	}
	// Seniority wording and 5+ years each raise the 0.70 base by 0.15.
	if !almostEq(python.Proficiency, 1.0) {
		t.Fatalf("expected demand capped at 1.0, got %.2f", python.Proficiency)
	}
}
