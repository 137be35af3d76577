package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"career-compass/internal/database"
	"career-compass/internal/domain/skill"
)

var ErrUserSkillNotFound = errors.New("skill not found")

const userSkillColumns = `id, user_id, skill_name, proficiency, confidence, sources, created_at, updated_at`

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.Record, error)
	FindByUserAndName(ctx context.Context, userID uuid.UUID, name string) (skill.Record, error)
	Upsert(ctx context.Context, rec skill.Record) (skill.Record, error)
	UpsertIfHigher(ctx context.Context, rec skill.Record) (bool, error)
	ReplaceForUser(ctx context.Context, userID uuid.UUID, recs []skill.Record) error
	Delete(ctx context.Context, userID uuid.UUID, name string) error
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userSkillColumns+`
		 FROM user_skills
		 WHERE user_id = $1
		 ORDER BY proficiency DESC, skill_name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Record, 0)
	for rows.Next() {
		rec, err := scanUserSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) FindByUserAndName(ctx context.Context, userID uuid.UUID, name string) (skill.Record, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userSkillColumns+`
		 FROM user_skills
		 WHERE user_id = $1 AND skill_name = $2`,
		userID, skill.NormalizeName(name),
	)

	rec, err := scanUserSkill(row)
	if err != nil {
		if isNoRows(err) {
			return skill.Record{}, ErrUserSkillNotFound
		}
		return skill.Record{}, err
	}
	return rec, nil
}

func (r *PostgresUserSkillRepository) Upsert(ctx context.Context, rec skill.Record) (skill.Record, error) {
	prepareUserSkill(&rec)

	_, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_name, proficiency, confidence, sources)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, skill_name) DO UPDATE
		 SET proficiency = EXCLUDED.proficiency,
		     confidence = EXCLUDED.confidence,
		     sources = EXCLUDED.sources,
		     updated_at = now()`,
		rec.ID, rec.UserID, rec.Name, rec.Proficiency, rec.Confidence, rec.Sources,
	)
	if err != nil {
		return skill.Record{}, err
	}
	return r.FindByUserAndName(ctx, rec.UserID, rec.Name)
}

// UpsertIfHigher stores a record only when it raises the known proficiency
// for that skill, merging provenance instead of overwriting it. Reports
// whether the row changed.
func (r *PostgresUserSkillRepository) UpsertIfHigher(ctx context.Context, rec skill.Record) (bool, error) {
	prepareUserSkill(&rec)

	rowsAffected, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_name, proficiency, confidence, sources)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, skill_name) DO UPDATE
		 SET proficiency = EXCLUDED.proficiency,
		     confidence = GREATEST(user_skills.confidence, EXCLUDED.confidence),
		     sources = ARRAY(SELECT DISTINCT unnest(user_skills.sources || EXCLUDED.sources) ORDER BY 1),
		     updated_at = now()
		 WHERE user_skills.proficiency < EXCLUDED.proficiency`,
		rec.ID, rec.UserID, rec.Name, rec.Proficiency, rec.Confidence, rec.Sources,
	)
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// ReplaceForUser swaps a user's whole skill set in one transaction, used
// after a full re-extraction run.
func (r *PostgresUserSkillRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, recs []skill.Record) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1`, userID); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	for _, rec := range recs {
		rec.UserID = userID
		prepareUserSkill(&rec)
		_, err := tx.Exec(ctx,
			`INSERT INTO user_skills (id, user_id, skill_name, proficiency, confidence, sources)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (user_id, skill_name) DO NOTHING`,
			rec.ID, rec.UserID, rec.Name, rec.Proficiency, rec.Confidence, rec.Sources,
		)
		if err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PostgresUserSkillRepository) Delete(ctx context.Context, userID uuid.UUID, name string) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM user_skills WHERE user_id = $1 AND skill_name = $2`,
		userID, skill.NormalizeName(name),
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserSkillNotFound
	}
	return nil
}

func prepareUserSkill(rec *skill.Record) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.Name = skill.NormalizeName(rec.Name)
	if rec.Sources == nil {
		rec.Sources = []string{}
	}
}

func scanUserSkill(row database.Row) (skill.Record, error) {
	var rec skill.Record
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Name, &rec.Proficiency, &rec.Confidence,
		&rec.Sources, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return skill.Record{}, err
	}
	return rec, nil
}

var _ UserSkillRepository = (*PostgresUserSkillRepository)(nil)
