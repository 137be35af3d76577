package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"career-compass/internal/config"
	"career-compass/internal/database/migration"
	dbpostgres "career-compass/internal/database/postgres"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long:  "Connects to the configured Postgres database and applies every migration shipped inside the binary that has not been recorded yet. Safe to run repeatedly; applied versions are skipped.",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, _ []string) error {
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

	r := migration.Runner{FS: migration.Embedded()}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	_, _ = fmt.Fprintln(os.Stdout, "migrations applied")
	return nil
}
