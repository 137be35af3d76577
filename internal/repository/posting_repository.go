package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"career-compass/internal/database"
	"career-compass/internal/domain/analysis"
	"career-compass/internal/domain/job"
	"career-compass/internal/domain/skill"
)

var ErrPostingNotFound = errors.New("job posting not found")

const postingColumns = `id, source, COALESCE(external_id, ''), title, COALESCE(company, ''),
	 COALESCE(location, ''), COALESCE(url, ''), description, COALESCE(target_role, ''),
	 COALESCE(posted_at, 'epoch'::timestamptz), collected_at`

type PostingRepository interface {
	Insert(ctx context.Context, p job.Posting) (inserted bool, err error)
	FindByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
	Search(ctx context.Context, params job.SearchParams, offset int) ([]job.Posting, int, error)
	DescriptionsByRole(ctx context.Context, targetRole string, limit int) ([]string, error)
	SourceStats(ctx context.Context) ([]analysis.SourceStat, error)
	CountCollectedSince(ctx context.Context, since time.Time) (int, error)
}

type PostgresPostingRepository struct {
	db database.DB
}

func NewPostgresPostingRepository(db database.DB) *PostgresPostingRepository {
	return &PostgresPostingRepository{db: db}
}

// Insert stores one collected posting. Duplicates from the same source
// are dropped by the (source, external_id) unique index; the return value
// reports whether a new row landed.
func (r *PostgresPostingRepository) Insert(ctx context.Context, p job.Posting) (bool, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	var externalID any
	if strings.TrimSpace(p.ExternalID) != "" {
		externalID = p.ExternalID
	}
	var postedAt any
	if !p.PostedAt.IsZero() {
		postedAt = p.PostedAt
	}

	rowsAffected, err := r.db.Exec(ctx,
		`INSERT INTO job_postings (id, source, external_id, title, company, location, url,
		                           description, target_role, posted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (source, external_id) WHERE external_id IS NOT NULL DO NOTHING`,
		p.ID, p.Source, externalID, p.Title, p.Company, p.Location, p.URL,
		p.Description, skill.NormalizeName(p.TargetRole), postedAt,
	)
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func (r *PostgresPostingRepository) FindByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx, `SELECT `+postingColumns+` FROM job_postings WHERE id = $1`, id)

	p, err := scanPosting(row)
	if err != nil {
		if isNoRows(err) {
			return job.Posting{}, ErrPostingNotFound
		}
		return job.Posting{}, err
	}
	return p, nil
}

// Search filters postings by role and location text, newest first,
// returning the page plus the unpaged total.
func (r *PostgresPostingRepository) Search(ctx context.Context, params job.SearchParams, offset int) ([]job.Posting, int, error) {
	role := skill.NormalizeName(params.Role)
	location := strings.TrimSpace(params.Location)

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where := `($1 = '' OR target_role = $1)
		   AND ($2 = '' OR location ILIKE '%' || $2 || '%' OR title ILIKE '%' || $2 || '%')`

	var total int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_postings WHERE `+where, role, location)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+postingColumns+`
		 FROM job_postings
		 WHERE `+where+`
		 ORDER BY collected_at DESC
		 LIMIT $3 OFFSET $4`,
		role, location, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]job.Posting, 0, limit)
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// DescriptionsByRole feeds market aggregation with the newest posting
// texts for a role.
func (r *PostgresPostingRepository) DescriptionsByRole(ctx context.Context, targetRole string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT description
		 FROM job_postings
		 WHERE target_role = $1
		 ORDER BY collected_at DESC
		 LIMIT $2`,
		skill.NormalizeName(targetRole), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0, limit)
	for rows.Next() {
		var description string
		if err := rows.Scan(&description); err != nil {
			return nil, err
		}
		out = append(out, description)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPostingRepository) SourceStats(ctx context.Context) ([]analysis.SourceStat, error) {
	rows, err := r.db.Query(ctx,
		`SELECT source, COUNT(*), MAX(collected_at)
		 FROM job_postings
		 GROUP BY source
		 ORDER BY COUNT(*) DESC, source ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]analysis.SourceStat, 0)
	for rows.Next() {
		var s analysis.SourceStat
		if err := rows.Scan(&s.Source, &s.TotalPostings, &s.LastCollected); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPostingRepository) CountCollectedSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_postings WHERE collected_at >= $1`, since)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanPosting(row database.Row) (job.Posting, error) {
	var p job.Posting
	err := row.Scan(
		&p.ID, &p.Source, &p.ExternalID, &p.Title, &p.Company,
		&p.Location, &p.URL, &p.Description, &p.TargetRole,
		&p.PostedAt, &p.CollectedAt,
	)
	if err != nil {
		return job.Posting{}, err
	}
	return p, nil
}

var _ PostingRepository = (*PostgresPostingRepository)(nil)
