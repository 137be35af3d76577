package repository

import (
	"context"

	"career-compass/internal/database"
	"career-compass/internal/domain/course"
	"career-compass/internal/domain/skill"
)

type CourseCatalogRepository interface {
	FindBySkill(ctx context.Context, skillName string, limit int) ([]course.Course, error)
}

type PostgresCourseCatalogRepository struct {
	db database.DB
}

func NewPostgresCourseCatalogRepository(db database.DB) *PostgresCourseCatalogRepository {
	return &PostgresCourseCatalogRepository{db: db}
}

// FindBySkill returns catalog courses for one skill, exact matches first.
// Partial matches in either direction cover skills like "python" against
// a catalog entry keyed "python-for-data-science".
func (r *PostgresCourseCatalogRepository) FindBySkill(ctx context.Context, skillName string, limit int) ([]course.Course, error) {
	key := skill.NormalizeName(skillName)
	if limit <= 0 || limit > 10 {
		limit = 3
	}

	rows, err := r.db.Query(ctx,
		`SELECT title, platform, url, cost, COALESCE(rating, 0), COALESCE(duration, ''),
		        COALESCE(description, ''), relevance
		 FROM course_catalog
		 WHERE skill_name = $1
		    OR skill_name LIKE '%' || $1 || '%'
		    OR $1 LIKE '%' || skill_name || '%'
		 ORDER BY (skill_name = $1) DESC, relevance DESC, rating DESC NULLS LAST
		 LIMIT $2`,
		key, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]course.Course, 0, limit)
	for rows.Next() {
		c := course.Course{SkillTargeted: key, Source: course.SourceCatalog}
		err := rows.Scan(&c.Name, &c.Platform, &c.URL, &c.Cost, &c.Rating,
			&c.Duration, &c.Description, &c.Relevance)
		if err != nil {
			return nil, err
		}
		c.Normalize()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ CourseCatalogRepository = (*PostgresCourseCatalogRepository)(nil)
