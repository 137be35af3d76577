package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"career-compass/internal/database"
	"career-compass/internal/domain/user"
)

const userColumns = `id, name, email, password_hash,
	 COALESCE(education, ''), COALESCE(university, ''), COALESCE(graduation_year, 0),
	 COALESCE(location, ''), COALESCE(target_role, ''), COALESCE(target_sector, ''),
	 COALESCE(phone, ''), COALESCE(linkedin_url, ''), COALESCE(github_url, ''),
	 COALESCE(resume_text, ''), COALESCE(resume_path, ''), created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, education, university, graduation_year,
		                    location, target_role, target_sector, phone, linkedin_url, github_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Education, u.University, u.GraduationYear,
		u.Location, u.TargetRole, u.TargetSector, u.Phone, u.LinkedinURL, u.GithubURL,
	)
	if isUniqueViolation(err) {
		return user.ErrEmailTaken
	}
	return err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) Update(ctx context.Context, u user.User) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE users
		 SET name = $1, email = $2, education = $3, university = $4, graduation_year = $5,
		     location = $6, target_role = $7, target_sector = $8, phone = $9,
		     linkedin_url = $10, github_url = $11, updated_at = now()
		 WHERE id = $12`,
		u.Name, u.Email, u.Education, u.University, u.GraduationYear,
		u.Location, u.TargetRole, u.TargetSector, u.Phone,
		u.LinkedinURL, u.GithubURL, u.ID,
	)
	if isUniqueViolation(err) {
		return user.ErrEmailTaken
	}
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) SaveResume(ctx context.Context, id uuid.UUID, text, path string) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE users SET resume_text = $1, resume_path = $2, updated_at = now() WHERE id = $3`,
		text, path, id,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.Education, &u.University, &u.GraduationYear,
		&u.Location, &u.TargetRole, &u.TargetSector,
		&u.Phone, &u.LinkedinURL, &u.GithubURL,
		&u.ResumeText, &u.ResumePath, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func isNoRows(err error) bool {
	return err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ user.Repository = (*PostgresUserRepository)(nil)
