package usecase

import (
	"context"
	"strings"
	"time"

	"career-compass/internal/domain/job"
	"career-compass/internal/domain/skill"
	"career-compass/internal/repository"
)

// IngestResult summarizes one webhook batch.
type IngestResult struct {
	TargetRole string `json:"target_role"`
	Inserted   int    `json:"inserted"`
	Duplicates int    `json:"duplicates"`
	Skipped    int    `json:"skipped"`
}

type IngestUsecase interface {
	StorePostings(ctx context.Context, targetRole, location string, postings []job.Posting) (IngestResult, error)
}

type Ingest struct {
	postings repository.PostingRepository
	cache    Cache
}

func NewIngestUsecase(postings repository.PostingRepository, cache Cache) *Ingest {
	return &Ingest{postings: postings, cache: cache}
}

// StorePostings lands a scraped batch. Postings missing a title or
// description are skipped, the source-level unique constraint turns
// re-deliveries into duplicate counts, and any insert drops the cached
// market snapshot for the role so the next read recomputes it.
func (u *Ingest) StorePostings(ctx context.Context, targetRole, location string, postings []job.Posting) (IngestResult, error) {
	roleKey := skill.NormalizeName(targetRole)
	if roleKey == "" {
		return IngestResult{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	res := IngestResult{TargetRole: roleKey}

	for _, p := range postings {
		if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Description) == "" {
			res.Skipped++
			continue
		}

		p.TargetRole = roleKey
		if p.CollectedAt.IsZero() {
			p.CollectedAt = now
		}

		inserted, err := u.postings.Insert(ctx, p)
		if err != nil {
			return res, ErrInternal
		}
		if inserted {
			res.Inserted++
		} else {
			res.Duplicates++
		}
	}

	if u.cache != nil && res.Inserted > 0 {
		_ = u.cache.Delete(ctx, marketCacheKey(roleKey, location))
		if strings.TrimSpace(location) != "" {
			_ = u.cache.Delete(ctx, marketCacheKey(roleKey, ""))
		}
	}

	return res, nil
}
