package usecase

import (
	"context"
	"errors"
	"strings"

	"career-compass/internal/domain/job"
	"career-compass/internal/domain/market"
	"career-compass/internal/extract"
	"career-compass/internal/repository"

	"github.com/google/uuid"
)

var ErrPostingNotFound = errors.New("posting not found")

// PostingPage is one page of collected postings plus the unpaged total.
type PostingPage struct {
	Items  []job.Posting `json:"items"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// PostingRequirement is one skill demand extracted from a posting text.
type PostingRequirement struct {
	Skill       string  `json:"skill"`
	Level       string  `json:"level"`
	Proficiency float64 `json:"proficiency_needed"`
}

// PostingAnalysis is the result of analyzing a single description.
type PostingAnalysis struct {
	SkillsFound  int                  `json:"skills_found"`
	Requirements []PostingRequirement `json:"requirements"`
}

type JobUsecase interface {
	Search(ctx context.Context, params job.SearchParams, offset int) (PostingPage, error)
	Get(ctx context.Context, id uuid.UUID) (job.Posting, error)
	AnalyzePosting(ctx context.Context, description string) (PostingAnalysis, error)
}

type Job struct {
	postings  repository.PostingRepository
	extractor *extract.Extractor
	cache     Cache
}

func NewJobUsecase(postings repository.PostingRepository, extractor *extract.Extractor, cache Cache) *Job {
	return &Job{postings: postings, extractor: extractor, cache: cache}
}

// Search pages through collected postings. Result pages are cached per
// filter combination; freshly ingested postings become visible once the
// short TTL lapses.
func (u *Job) Search(ctx context.Context, params job.SearchParams, offset int) (PostingPage, error) {
	if params.Limit < 0 || offset < 0 {
		return PostingPage{}, ErrInvalidInput
	}

	key := postingSearchCacheKey(params, offset)
	if u.cache != nil {
		var cached PostingPage
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	items, total, err := u.postings.Search(ctx, params, offset)
	if err != nil {
		return PostingPage{}, ErrInternal
	}

	page := PostingPage{Items: items, Total: total, Limit: params.Limit, Offset: offset}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, page, postingSearchCacheTTL)
	}
	return page, nil
}

func (u *Job) Get(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	if id == uuid.Nil {
		return job.Posting{}, ErrInvalidInput
	}

	p, err := u.postings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostingNotFound) {
			return job.Posting{}, ErrPostingNotFound
		}
		return job.Posting{}, ErrInternal
	}
	return p, nil
}

// AnalyzePosting extracts the skill demands of one description. Preferred
// and required sections weigh differently, so the caller sees each skill
// tagged with the section it came from.
func (u *Job) AnalyzePosting(ctx context.Context, description string) (PostingAnalysis, error) {
	description = strings.TrimSpace(description)
	if len(description) < job.MinDescriptionLength {
		return PostingAnalysis{}, ErrInvalidInput
	}

	mentions := market.AnalyzePosting(description, u.extractor.Names)

	reqs := make([]PostingRequirement, 0, len(mentions))
	for _, m := range mentions {
		level := "required"
		if m.Preferred {
			level = "preferred"
		}
		reqs = append(reqs, PostingRequirement{
			Skill:       m.Name,
			Level:       level,
			Proficiency: m.Proficiency,
		})
	}
	return PostingAnalysis{SkillsFound: len(reqs), Requirements: reqs}, nil
}
