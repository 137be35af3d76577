package seeder

import (
	"context"
	"fmt"

	"career-compass/internal/database"
)

// PostingsSeeder loads a small batch of postings so market analysis has
// real input before the collector has run.
type PostingsSeeder struct{}

func (PostingsSeeder) Name() string { return "job_postings" }

func (PostingsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "job_postings",
		"id", "source", "external_id", "title", "company", "location",
		"url", "description", "target_role", "posted_at", "collected_at",
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

	items := []struct {
		ExternalID  string
		Title       string
		Company     string
		Location    string
		Description string
	}{
		{
			ExternalID: "seed-hda-001",
			Title:      "Healthcare Data Analyst",
			Company:    "Meridian Health Systems",
			Location:   "Chicago, IL",
			Description: "Required: Python, SQL, and data analysis with 3+ years building production reporting " +
				"against EHR extracts. Preferred: Tableau dashboards and a statistics background.",
		},
		{
			ExternalID: "seed-hda-002",
			Title:      "Clinical Data Analyst",
			Company:    "Lakeside Medical Group",
			Location:   "Remote",
			Description: "Required: SQL and pandas for claims data processing, strong data analysis skills. " +
				"Preferred: machine learning exposure and healthcare data experience.",
		},
		{
			ExternalID: "seed-hda-003",
			Title:      "Data Analyst, Population Health",
			Company:    "Northbridge Care",
			Location:   "Boston, MA",
			Description: "Required: expert Python and SQL with 5+ years in large-scale analytics, plus Tableau " +
				"reporting. Preferred: NLP on clinical notes and TensorFlow.",
		},
		{
			ExternalID: "seed-hda-004",
			Title:      "Healthcare Analytics Specialist",
			Company:    "CarePoint Partners",
			Location:   "Austin, TX",
			Description: "Required: data analysis, statistics, and Python scripting for enterprise healthcare " +
				"data pipelines. Preferred: pandas and machine learning.",
		},
		{
			ExternalID: "seed-hda-005",
			Title:      "Senior Data Analyst",
			Company:    "Meridian Health Systems",
			Location:   "Chicago, IL",
			Description: "Required: proficient SQL, Python, and Tableau for deployed executive dashboards. " +
				"Preferred: healthcare data standards such as HL7 and FHIR.",
		},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO job_postings
				(id, source, external_id, title, company, location, description, target_role)
			VALUES (gen_random_uuid(), 'seed', $1, $2, $3, $4, $5, $6)
			ON CONFLICT (source, external_id) WHERE external_id IS NOT NULL DO NOTHING`,
			it.ExternalID,
			it.Title,
			it.Company,
			it.Location,
			it.Description,
			DefaultTargetRole,
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
