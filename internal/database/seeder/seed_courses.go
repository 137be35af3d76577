package seeder

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"career-compass/internal/database"
	"career-compass/internal/domain/skill"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed data/course_catalog.json
var courseCatalogJSON []byte

//go:embed data/course_catalog.schema.json
var courseCatalogSchema []byte

type CourseCatalogSeeder struct{}

func (CourseCatalogSeeder) Name() string { return "course_catalog" }

type CatalogCourse struct {
	Skill       string  `json:"skill"`
	Title       string  `json:"title"`
	Platform    string  `json:"platform"`
	URL         string  `json:"url"`
	Cost        string  `json:"cost"`
	Rating      float64 `json:"rating"`
	Duration    string  `json:"duration"`
	Description string  `json:"description"`
	Relevance   float64 `json:"relevance"`
}

func (CourseCatalogSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "course_catalog",
		"id", "skill_name", "title", "platform", "url", "cost", "rating",
		"duration", "description", "relevance", "created_at",
	); err != nil {
		return err
	}

	courses, err := LoadCourseCatalog()
	if err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, c := range courses {
		cost := c.Cost
		if cost == "" {
			cost = "Varies"
		}
		relevance := c.Relevance
		if relevance == 0 {
			relevance = 0.8
		}
		var rating any
		if c.Rating > 0 {
			rating = c.Rating
		}
		_, err := tx.Exec(
			ctx,
			`INSERT INTO course_catalog
				(id, skill_name, title, platform, url, cost, rating, duration, description, relevance)
			VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (skill_name, url) DO NOTHING`,
			skill.NormalizeName(c.Skill),
			c.Title,
			c.Platform,
			c.URL,
			cost,
			rating,
			c.Duration,
			c.Description,
			relevance,
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

// LoadCourseCatalog validates the embedded catalog against its schema before
// decoding. A catalog edit that breaks the schema fails at startup, not at
// recommendation time.
func LoadCourseCatalog() ([]CatalogCourse, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(courseCatalogSchema),
		gojsonschema.NewBytesLoader(courseCatalogJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("validate course catalog: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("course catalog does not match schema: %s", result.Errors()[0])
	}

	var courses []CatalogCourse
	if err := json.Unmarshal(courseCatalogJSON, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}
