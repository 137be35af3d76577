package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"career-compass/internal/database"
	"career-compass/internal/domain/artifact"
	"career-compass/internal/domain/user"
)

var (
	ErrArtifactNotFound  = errors.New("artifact not found")
	ErrArtifactForbidden = errors.New("forbidden")
)

// ArtifactRepository stores the career artifacts skill extraction feeds on.
type ArtifactRepository interface {
	CreateCourse(ctx context.Context, c artifact.Course) (artifact.Course, error)
	ListCourses(ctx context.Context, userID uuid.UUID) ([]artifact.Course, error)
	DeleteCourse(ctx context.Context, id, userID uuid.UUID) error

	CreateProject(ctx context.Context, p artifact.Project) (artifact.Project, error)
	ListProjects(ctx context.Context, userID uuid.UUID) ([]artifact.Project, error)
	DeleteProject(ctx context.Context, id, userID uuid.UUID) error

	CreateCertification(ctx context.Context, c artifact.Certification) (artifact.Certification, error)
	ListCertifications(ctx context.Context, userID uuid.UUID) ([]artifact.Certification, error)
	DeleteCertification(ctx context.Context, id, userID uuid.UUID) error

	CreateExperience(ctx context.Context, e artifact.Experience) (artifact.Experience, error)
	ListExperience(ctx context.Context, userID uuid.UUID) ([]artifact.Experience, error)
	DeleteExperience(ctx context.Context, id, userID uuid.UUID) error

	CountByUser(ctx context.Context, userID uuid.UUID) (user.ArtifactCounts, error)
}

type PostgresArtifactRepository struct {
	db database.DB
}

func NewPostgresArtifactRepository(db database.DB) *PostgresArtifactRepository {
	return &PostgresArtifactRepository{db: db}
}

const courseColumns = `id, user_id, course_name, COALESCE(platform, ''), COALESCE(instructor, ''),
	 COALESCE(grade, ''), COALESCE(completion_date, ''), COALESCE(duration, ''),
	 COALESCE(description, ''), COALESCE(certificate_url, ''), created_at, updated_at`

func (r *PostgresArtifactRepository) CreateCourse(ctx context.Context, c artifact.Course) (artifact.Course, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO courses (id, user_id, course_name, platform, instructor, grade,
		                      completion_date, duration, description, certificate_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.UserID, c.CourseName, c.Platform, c.Instructor, c.Grade,
		c.CompletionDate, c.Duration, c.Description, c.CertificateURL,
	)
	if err != nil {
		return artifact.Course{}, err
	}

	row := r.db.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, c.ID)
	return scanCourse(row)
}

func (r *PostgresArtifactRepository) ListCourses(ctx context.Context, userID uuid.UUID) ([]artifact.Course, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]artifact.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresArtifactRepository) DeleteCourse(ctx context.Context, id, userID uuid.UUID) error {
	return r.deleteOwned(ctx, "courses", id, userID)
}

const projectColumns = `id, user_id, project_name, COALESCE(description, ''), tech_stack,
	 COALESCE(role, ''), COALESCE(team_size, 0), COALESCE(duration, ''), COALESCE(github_link, ''),
	 COALESCE(deployed_link, ''), COALESCE(project_type, ''), COALESCE(impact, ''), created_at, updated_at`

func (r *PostgresArtifactRepository) CreateProject(ctx context.Context, p artifact.Project) (artifact.Project, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO projects (id, user_id, project_name, description, tech_stack, role, team_size,
		                       duration, github_link, deployed_link, project_type, impact)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.UserID, p.ProjectName, p.Description, p.TechStack, p.Role, p.TeamSize,
		p.Duration, p.GithubLink, p.DeployedLink, p.ProjectType, p.Impact,
	)
	if err != nil {
		return artifact.Project{}, err
	}

	row := r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, p.ID)
	return scanProject(row)
}

func (r *PostgresArtifactRepository) ListProjects(ctx context.Context, userID uuid.UUID) ([]artifact.Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]artifact.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
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

func (r *PostgresArtifactRepository) DeleteProject(ctx context.Context, id, userID uuid.UUID) error {
	return r.deleteOwned(ctx, "projects", id, userID)
}

const certificationColumns = `id, user_id, certification_name, COALESCE(issuing_organization, ''),
	 COALESCE(issue_date, ''), COALESCE(expiry_date, ''), COALESCE(credential_id, ''),
	 COALESCE(credential_url, ''), created_at, updated_at`

func (r *PostgresArtifactRepository) CreateCertification(ctx context.Context, c artifact.Certification) (artifact.Certification, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO certifications (id, user_id, certification_name, issuing_organization,
		                             issue_date, expiry_date, credential_id, credential_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.UserID, c.CertificationName, c.IssuingOrganization,
		c.IssueDate, c.ExpiryDate, c.CredentialID, c.CredentialURL,
	)
	if err != nil {
		return artifact.Certification{}, err
	}

	row := r.db.QueryRow(ctx, `SELECT `+certificationColumns+` FROM certifications WHERE id = $1`, c.ID)
	return scanCertification(row)
}

func (r *PostgresArtifactRepository) ListCertifications(ctx context.Context, userID uuid.UUID) ([]artifact.Certification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+certificationColumns+` FROM certifications WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]artifact.Certification, 0)
	for rows.Next() {
		c, err := scanCertification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresArtifactRepository) DeleteCertification(ctx context.Context, id, userID uuid.UUID) error {
	return r.deleteOwned(ctx, "certifications", id, userID)
}

const experienceColumns = `id, user_id, company_name, job_title, COALESCE(employment_type, ''),
	 COALESCE(start_date, ''), COALESCE(end_date, ''), COALESCE(location, ''),
	 COALESCE(description, ''), technologies_used, created_at, updated_at`

func (r *PostgresArtifactRepository) CreateExperience(ctx context.Context, e artifact.Experience) (artifact.Experience, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.TechnologiesUsed == nil {
		e.TechnologiesUsed = []string{}
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO work_experience (id, user_id, company_name, job_title, employment_type,
		                              start_date, end_date, location, description, technologies_used)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.UserID, e.CompanyName, e.JobTitle, e.EmploymentType,
		e.StartDate, e.EndDate, e.Location, e.Description, e.TechnologiesUsed,
	)
	if err != nil {
		return artifact.Experience{}, err
	}

	row := r.db.QueryRow(ctx, `SELECT `+experienceColumns+` FROM work_experience WHERE id = $1`, e.ID)
	return scanExperience(row)
}

func (r *PostgresArtifactRepository) ListExperience(ctx context.Context, userID uuid.UUID) ([]artifact.Experience, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+experienceColumns+` FROM work_experience WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]artifact.Experience, 0)
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresArtifactRepository) DeleteExperience(ctx context.Context, id, userID uuid.UUID) error {
	return r.deleteOwned(ctx, "work_experience", id, userID)
}

func (r *PostgresArtifactRepository) CountByUser(ctx context.Context, userID uuid.UUID) (user.ArtifactCounts, error) {
	row := r.db.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM user_skills WHERE user_id = $1),
		   (SELECT COUNT(*) FROM projects WHERE user_id = $1),
		   (SELECT COUNT(*) FROM courses WHERE user_id = $1),
		   (SELECT COUNT(*) FROM certifications WHERE user_id = $1),
		   (SELECT COUNT(*) FROM work_experience WHERE user_id = $1)`,
		userID,
	)

	var counts user.ArtifactCounts
	err := row.Scan(&counts.Skills, &counts.Projects, &counts.Courses, &counts.Certifications, &counts.Experience)
	if err != nil {
		return user.ArtifactCounts{}, err
	}
	return counts, nil
}

// deleteOwned removes one row after verifying ownership, so a wrong owner
// surfaces as forbidden rather than not found.
func (r *PostgresArtifactRepository) deleteOwned(ctx context.Context, table string, id, userID uuid.UUID) error {
	var owner uuid.UUID
	row := r.db.QueryRow(ctx, `SELECT user_id FROM `+table+` WHERE id = $1`, id)
	if err := row.Scan(&owner); err != nil {
		if isNoRows(err) {
			return ErrArtifactNotFound
		}
		return err
	}
	if owner != userID {
		return ErrArtifactForbidden
	}

	_, err := r.db.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	return err
}

func scanCourse(row database.Row) (artifact.Course, error) {
	var c artifact.Course
	err := row.Scan(
		&c.ID, &c.UserID, &c.CourseName, &c.Platform, &c.Instructor,
		&c.Grade, &c.CompletionDate, &c.Duration,
		&c.Description, &c.CertificateURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return artifact.Course{}, err
	}
	return c, nil
}

func scanProject(row database.Row) (artifact.Project, error) {
	var p artifact.Project
	err := row.Scan(
		&p.ID, &p.UserID, &p.ProjectName, &p.Description, &p.TechStack,
		&p.Role, &p.TeamSize, &p.Duration, &p.GithubLink,
		&p.DeployedLink, &p.ProjectType, &p.Impact, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return artifact.Project{}, err
	}
	return p, nil
}

func scanCertification(row database.Row) (artifact.Certification, error) {
	var c artifact.Certification
	err := row.Scan(
		&c.ID, &c.UserID, &c.CertificationName, &c.IssuingOrganization,
		&c.IssueDate, &c.ExpiryDate, &c.CredentialID,
		&c.CredentialURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return artifact.Certification{}, err
	}
	return c, nil
}

func scanExperience(row database.Row) (artifact.Experience, error) {
	var e artifact.Experience
	err := row.Scan(
		&e.ID, &e.UserID, &e.CompanyName, &e.JobTitle, &e.EmploymentType,
		&e.StartDate, &e.EndDate, &e.Location,
		&e.Description, &e.TechnologiesUsed, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return artifact.Experience{}, err
	}
	return e, nil
}

var _ ArtifactRepository = (*PostgresArtifactRepository)(nil)
