package seeder

import (
	"context"
	"fmt"

	"career-compass/internal/database"
	"career-compass/internal/domain/market"
)

// DefaultTargetRole is the role the canned market profile describes. Users
// without live market data for their role fall back to this profile.
const DefaultTargetRole = "healthcare-data-analyst"

type MarketSeeder struct{}

func (MarketSeeder) Name() string { return "market_requirements" }

func (MarketSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "market_requirements",
		"id", "target_role", "skill_name", "frequency", "requirement_level",
		"avg_proficiency", "jobs_analyzed", "source", "analyzed_at",
	); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, stat := range market.SampleStats() {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO market_requirements
				(id, target_role, skill_name, frequency, requirement_level, avg_proficiency, jobs_analyzed, source)
			VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, 'seed')
			ON CONFLICT (target_role, skill_name) DO NOTHING`,
			DefaultTargetRole,
			stat.Name,
			stat.Frequency,
			stat.Level,
			stat.AvgProficiency,
			25,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
