// Package main implements careerctl, the operator CLI for the career
// readiness backend. It covers the jobs that should not require a running
// API process: applying migrations, seeding reference data and scoring a
// skill profile against a market profile offline.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "careerctl",
	Short: "Admin CLI for the career readiness backend",
	Long:  "careerctl runs operational tasks against the career readiness backend: database migrations, reference data seeding and offline gap analysis from JSON files.",
}

func main() {
	// Local development reads a .env file; in deployments the file is absent
	// and the environment is already populated.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
