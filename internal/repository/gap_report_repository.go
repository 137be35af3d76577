package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"career-compass/internal/database"
	"career-compass/internal/domain/analysis"
	"career-compass/internal/domain/gap"
)

var ErrGapReportNotFound = errors.New("gap report not found")

type GapReportRepository interface {
	Save(ctx context.Context, userID uuid.UUID, targetRole string, report gap.Report) (analysis.StoredReport, error)
	Latest(ctx context.Context, userID uuid.UUID) (analysis.StoredReport, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]analysis.StoredReport, error)
}

type PostgresGapReportRepository struct {
	db database.DB
}

func NewPostgresGapReportRepository(db database.DB) *PostgresGapReportRepository {
	return &PostgresGapReportRepository{db: db}
}

func (r *PostgresGapReportRepository) Save(ctx context.Context, userID uuid.UUID, targetRole string, report gap.Report) (analysis.StoredReport, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return analysis.StoredReport{}, err
	}

	id := uuid.New()
	_, err = r.db.Exec(ctx,
		`INSERT INTO gap_reports (id, user_id, target_role, overall_readiness, report)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, userID, targetRole, report.OverallReadiness, payload,
	)
	if err != nil {
		return analysis.StoredReport{}, err
	}

	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, target_role, overall_readiness, report, created_at
		 FROM gap_reports WHERE id = $1`,
		id,
	)
	return scanStoredReport(row)
}

func (r *PostgresGapReportRepository) Latest(ctx context.Context, userID uuid.UUID) (analysis.StoredReport, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, target_role, overall_readiness, report, created_at
		 FROM gap_reports
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID,
	)

	stored, err := scanStoredReport(row)
	if err != nil {
		if isNoRows(err) {
			return analysis.StoredReport{}, ErrGapReportNotFound
		}
		return analysis.StoredReport{}, err
	}
	return stored, nil
}

func (r *PostgresGapReportRepository) History(ctx context.Context, userID uuid.UUID, limit int) ([]analysis.StoredReport, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, target_role, overall_readiness, report, created_at
		 FROM gap_reports
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]analysis.StoredReport, 0, limit)
	for rows.Next() {
		stored, err := scanStoredReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, stored)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanStoredReport(row database.Row) (analysis.StoredReport, error) {
	var (
		stored  analysis.StoredReport
		payload []byte
	)
	err := row.Scan(&stored.ID, &stored.UserID, &stored.TargetRole,
		&stored.OverallReadiness, &payload, &stored.CreatedAt)
	if err != nil {
		return analysis.StoredReport{}, err
	}
	if err := json.Unmarshal(payload, &stored.Report); err != nil {
		return analysis.StoredReport{}, err
	}
	return stored, nil
}

var _ GapReportRepository = (*PostgresGapReportRepository)(nil)
