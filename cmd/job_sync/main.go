// Package main provides the entry point for the job-sync CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_sync",
	Short: "Sync the new-grad job listing into the tracking database",
	Long:  "job_sync fetches the SimplifyJobs new-grad markdown table, filters it to the target metro area, and reconciles it into a Notion database with one deduplicated page per posting.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
