// Package seeder loads the reference data an empty database needs before
// the API is useful: a starter market profile per supported role, the
// course catalog and a batch of sample postings. Every seeder upserts, so
// reruns are safe.
package seeder

import (
	"context"

	"career-compass/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Defaults lists the seeders in the order they run.
func Defaults() []Seeder {
	return []Seeder{
		MarketSeeder{},
		CourseCatalogSeeder{},
		PostingsSeeder{},
	}
}
