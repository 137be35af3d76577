package market

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"career-compass/internal/domain/skill"
	"career-compass/internal/infrastructure/ingest"
	"career-compass/internal/repository"
)

type freshnessCache interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

// FreshnessService retriggers posting collection when the stored market
// snapshot for a role has aged out. Every call is best effort: a failed
// trigger never surfaces to the request that noticed the staleness.
type FreshnessService struct {
	markets   repository.MarketRepository
	collector ingest.TriggerClient
	cache     freshnessCache
	logger    *log.Logger
	maxAge    time.Duration
}

func NewFreshnessService(markets repository.MarketRepository, collector ingest.TriggerClient, cache freshnessCache, logger *log.Logger, maxAge time.Duration) *FreshnessService {
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	return &FreshnessService{
		markets:   markets,
		collector: collector,
		cache:     cache,
		logger:    logger,
		maxAge:    maxAge,
	}
}

// EnsureFresh checks the snapshot age for role and fires one background
// collection run when it is stale or missing. A short-lived redis lock keeps
// concurrent readers from piling up duplicate runs.
func (s *FreshnessService) EnsureFresh(ctx context.Context, role, location string) {
	if s == nil || s.markets == nil || s.collector == nil {
		return
	}

	roleKey := skill.NormalizeName(role)
	if roleKey == "" {
		return
	}

	stale := true
	stored, err := s.markets.FindByRole(ctx, roleKey)
	switch {
	case err == nil:
		stale = time.Since(stored.AnalyzedAt) > s.maxAge
	case errors.Is(err, repository.ErrMarketNotFound):
	default:
		return
	}
	if !stale {
		return
	}

	if s.logger != nil {
		s.logger.Printf("[Market] stale snapshot role=%q max_age=%s", roleKey, s.maxAge)
	}

	lockKey := "market:refresh:lock:" + roleKey
	acquired := true
	if s.cache != nil {
		ok, err := s.cache.SetIfNotExists(ctx, lockKey, "1", 10*time.Minute)
		if err == nil {
			acquired = ok
		}
	}
	if !acquired {
		return
	}

	loc := strings.TrimSpace(location)
	go func() {
		ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		taskID, err := s.collector.TriggerCollect(ctx2, roleKey, loc)
		if err != nil {
			if s.logger != nil {
				s.logger.Printf("[Market] collect trigger error role=%q err=%v", roleKey, err)
			}
			return
		}
		if s.logger != nil {
			s.logger.Printf("[Market] collect triggered role=%q task_id=%s", roleKey, taskID)
		}
	}()
}
