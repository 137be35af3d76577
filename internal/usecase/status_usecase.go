package usecase

import (
	"context"
	"time"

	"career-compass/internal/database"
	"career-compass/internal/domain/analysis"
	"career-compass/internal/repository"
)

// Pinger is the slice of a redis client the status probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type StatusUsecase interface {
	ServiceStatus(ctx context.Context) (analysis.ServiceStatus, error)
}

type Status struct {
	postings repository.PostingRepository
	markets  repository.MarketRepository
	db       database.DB
	redis    Pinger
}

func NewStatusUsecase(postings repository.PostingRepository, markets repository.MarketRepository, db database.DB, redis Pinger) *Status {
	return &Status{postings: postings, markets: markets, db: db, redis: redis}
}

// ServiceStatus reports collection counts and backing-store health. Probe
// failures zero the affected fields rather than failing the whole snapshot.
func (u *Status) ServiceStatus(ctx context.Context) (analysis.ServiceStatus, error) {
	now := time.Now().UTC()
	status := analysis.ServiceStatus{
		Sources:    []analysis.SourceStat{},
		ServerTime: now,
	}

	if sources, err := u.postings.SourceStats(ctx); err == nil {
		status.Sources = sources
		for _, s := range sources {
			status.TotalPostings += s.TotalPostings
		}
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if count, err := u.postings.CountCollectedSince(ctx, midnight); err == nil {
		status.PostingsToday = count
	}

	if roles, err := u.markets.RolesAnalyzed(ctx); err == nil {
		status.RolesAnalyzed = roles
	}

	if u.db != nil && u.db.Ping(ctx) == nil {
		status.DatabaseHealthy = true
	}
	if u.redis != nil && u.redis.Ping(ctx) == nil {
		status.RedisHealthy = true
	}

	return status, nil
}
