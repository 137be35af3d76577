package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"career-compass/internal/database"
	"career-compass/internal/domain/market"
	"career-compass/internal/domain/skill"
)

var ErrMarketNotFound = errors.New("no market requirements for role")

// RoleMarket is the stored demand profile for one target role, with the
// provenance needed for freshness decisions.
type RoleMarket struct {
	TargetRole   string
	Stats        []market.Stat
	JobsAnalyzed int
	Source       string
	AnalyzedAt   time.Time
}

type MarketRepository interface {
	FindByRole(ctx context.Context, targetRole string) (RoleMarket, error)
	ReplaceForRole(ctx context.Context, targetRole string, stats []market.Stat, jobsAnalyzed int, source string) error
	RolesAnalyzed(ctx context.Context) (int, error)
}

type PostgresMarketRepository struct {
	db database.DB
}

func NewPostgresMarketRepository(db database.DB) *PostgresMarketRepository {
	return &PostgresMarketRepository{db: db}
}

func (r *PostgresMarketRepository) FindByRole(ctx context.Context, targetRole string) (RoleMarket, error) {
	role := skill.NormalizeName(targetRole)

	rows, err := r.db.Query(ctx,
		`SELECT skill_name, frequency, requirement_level, avg_proficiency, jobs_analyzed, source, analyzed_at
		 FROM market_requirements
		 WHERE target_role = $1
		 ORDER BY frequency DESC, skill_name ASC`,
		role,
	)
	if err != nil {
		return RoleMarket{}, err
	}
	defer rows.Close()

	out := RoleMarket{TargetRole: role, Stats: make([]market.Stat, 0)}
	for rows.Next() {
		var s market.Stat
		if err := rows.Scan(&s.Name, &s.Frequency, &s.Level, &s.AvgProficiency,
			&out.JobsAnalyzed, &out.Source, &out.AnalyzedAt); err != nil {
			return RoleMarket{}, err
		}
		out.Stats = append(out.Stats, s)
	}
	if err := rows.Err(); err != nil {
		return RoleMarket{}, err
	}
	if len(out.Stats) == 0 {
		return RoleMarket{}, ErrMarketNotFound
	}
	return out, nil
}

// ReplaceForRole swaps the whole demand profile for a role in one
// transaction, so readers never observe a half-written profile.
func (r *PostgresMarketRepository) ReplaceForRole(ctx context.Context, targetRole string, stats []market.Stat, jobsAnalyzed int, source string) error {
	role := skill.NormalizeName(targetRole)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM market_requirements WHERE target_role = $1`, role); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	for _, s := range stats {
		name := skill.NormalizeName(s.Name)
		if name == "" {
			continue
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO market_requirements (id, target_role, skill_name, frequency, requirement_level,
			                                  avg_proficiency, jobs_analyzed, source, analyzed_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
			 ON CONFLICT (target_role, skill_name) DO NOTHING`,
			uuid.New(), role, name, s.Frequency, s.Level, s.AvgProficiency, jobsAnalyzed, source,
		)
		if err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PostgresMarketRepository) RolesAnalyzed(ctx context.Context) (int, error) {
	var count int
	row := r.db.QueryRow(ctx, `SELECT COUNT(DISTINCT target_role) FROM market_requirements`)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

var _ MarketRepository = (*PostgresMarketRepository)(nil)
