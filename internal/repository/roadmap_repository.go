package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"career-compass/internal/database"
	"career-compass/internal/domain/roadmap"
)

var ErrRoadmapNotFound = errors.New("roadmap not selected")

type RoadmapRepository interface {
	SelectDomain(ctx context.Context, userID uuid.UUID, domain string) (roadmap.Selection, bool, error)
	GetSelection(ctx context.Context, userID uuid.UUID, domain string) (roadmap.Selection, error)
	ListSelections(ctx context.Context, userID uuid.UUID) ([]roadmap.Selection, error)
	DeleteSelection(ctx context.Context, userID uuid.UUID, domain string) error
	UpsertProgress(ctx context.Context, p roadmap.Progress) (roadmap.Progress, error)
	ListProgress(ctx context.Context, userID uuid.UUID, domain string) ([]roadmap.Progress, error)
}

type PostgresRoadmapRepository struct {
	db database.DB
}

func NewPostgresRoadmapRepository(db database.DB) *PostgresRoadmapRepository {
	return &PostgresRoadmapRepository{db: db}
}

// SelectDomain records that a user started a roadmap. Selecting the same
// domain again is not an error; the bool reports whether a new selection
// was created.
func (r *PostgresRoadmapRepository) SelectDomain(ctx context.Context, userID uuid.UUID, domain string) (roadmap.Selection, bool, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`INSERT INTO user_roadmaps (id, user_id, domain)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, domain) DO NOTHING`,
		uuid.New(), userID, domain,
	)
	if err != nil {
		return roadmap.Selection{}, false, err
	}

	selection, err := r.GetSelection(ctx, userID, domain)
	if err != nil {
		return roadmap.Selection{}, false, err
	}
	return selection, rowsAffected > 0, nil
}

func (r *PostgresRoadmapRepository) GetSelection(ctx context.Context, userID uuid.UUID, domain string) (roadmap.Selection, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, domain, started_at FROM user_roadmaps WHERE user_id = $1 AND domain = $2`,
		userID, domain,
	)

	var s roadmap.Selection
	if err := row.Scan(&s.UserID, &s.Domain, &s.StartedAt); err != nil {
		if isNoRows(err) {
			return roadmap.Selection{}, ErrRoadmapNotFound
		}
		return roadmap.Selection{}, err
	}
	return s, nil
}

func (r *PostgresRoadmapRepository) ListSelections(ctx context.Context, userID uuid.UUID) ([]roadmap.Selection, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, domain, started_at
		 FROM user_roadmaps
		 WHERE user_id = $1
		 ORDER BY started_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]roadmap.Selection, 0)
	for rows.Next() {
		var s roadmap.Selection
		if err := rows.Scan(&s.UserID, &s.Domain, &s.StartedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteSelection drops the selection and its milestone progress together.
func (r *PostgresRoadmapRepository) DeleteSelection(ctx context.Context, userID uuid.UUID, domain string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}

	rowsAffected, err := tx.Exec(ctx,
		`DELETE FROM user_roadmaps WHERE user_id = $1 AND domain = $2`,
		userID, domain,
	)
	if err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if rowsAffected == 0 {
		_ = tx.Rollback(ctx)
		return ErrRoadmapNotFound
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM roadmap_progress WHERE user_id = $1 AND domain = $2`,
		userID, domain,
	); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// UpsertProgress stores a milestone status change. Timestamps follow the
// status: started_at is set once a milestone leaves not_started and cleared
// if it returns there, completed_at is set on completion and cleared when
// the milestone is reopened.
func (r *PostgresRoadmapRepository) UpsertProgress(ctx context.Context, p roadmap.Progress) (roadmap.Progress, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO roadmap_progress (id, user_id, domain, milestone_id, status, started_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5,
		         CASE WHEN $5 <> 'not_started' THEN now() END,
		         CASE WHEN $5 = 'completed' THEN now() END)
		 ON CONFLICT (user_id, domain, milestone_id) DO UPDATE
		 SET status = EXCLUDED.status,
		     started_at = CASE
		       WHEN EXCLUDED.status = 'not_started' THEN NULL
		       ELSE COALESCE(roadmap_progress.started_at, now())
		     END,
		     completed_at = CASE
		       WHEN EXCLUDED.status = 'completed' THEN COALESCE(roadmap_progress.completed_at, now())
		       ELSE NULL
		     END,
		     updated_at = now()`,
		uuid.New(), p.UserID, p.Domain, p.MilestoneID, p.Status,
	)
	if err != nil {
		return roadmap.Progress{}, err
	}

	row := r.db.QueryRow(ctx,
		`SELECT user_id, domain, milestone_id, status, started_at, completed_at, updated_at
		 FROM roadmap_progress
		 WHERE user_id = $1 AND domain = $2 AND milestone_id = $3`,
		p.UserID, p.Domain, p.MilestoneID,
	)
	return scanProgress(row)
}

func (r *PostgresRoadmapRepository) ListProgress(ctx context.Context, userID uuid.UUID, domain string) ([]roadmap.Progress, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, domain, milestone_id, status, started_at, completed_at, updated_at
		 FROM roadmap_progress
		 WHERE user_id = $1 AND domain = $2
		 ORDER BY milestone_id ASC`,
		userID, domain,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]roadmap.Progress, 0)
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanProgress(row database.Row) (roadmap.Progress, error) {
	var p roadmap.Progress
	err := row.Scan(&p.UserID, &p.Domain, &p.MilestoneID, &p.Status,
		&p.StartedAt, &p.CompletedAt, &p.UpdatedAt)
	if err != nil {
		return roadmap.Progress{}, err
	}
	return p, nil
}

var _ RoadmapRepository = (*PostgresRoadmapRepository)(nil)
