package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"career-compass/internal/config"
	dbpostgres "career-compass/internal/database/postgres"
	"career-compass/internal/database/seeder"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference data into the database",
	Long:  "Runs the built-in seeders: course catalog, market skill profiles and sample job postings. Expects the schema to exist, so run migrate first. Seeders upsert, so re-running refreshes the data instead of duplicating it.",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = db.Close() }()

	r := seeder.Runner{Seeders: seeder.Defaults()}
	if err := r.Run(ctx, db); err != nil {
		return fmt.Errorf("run seeders: %w", err)
	}

	_, _ = fmt.Fprintln(os.Stdout, "seed data loaded")
	return nil
}
