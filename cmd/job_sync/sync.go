package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-sync/internal/config"
	"github.com/jonathan/job-sync/internal/fetch"
	"github.com/jonathan/job-sync/internal/location"
	"github.com/jonathan/job-sync/internal/notion"
	"github.com/jonathan/job-sync/internal/observability"
	"github.com/jonathan/job-sync/internal/pipeline"
	"github.com/jonathan/job-sync/internal/slack"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync pass against the source listing",
	Long:  "Run one sync pass: fetch the listing, parse and filter it, then create pages for new postings and refresh ages on known ones. With --ages-only, no pages are ever created.",
	RunE:  runSync,
}

var (
	agesOnly      bool
	verbose       bool
	locationsFile string
)

func init() {
	syncCmd.Flags().BoolVar(&agesOnly, "ages-only", false, "Only refresh ages of existing entries; never create")
	syncCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed per-row information")
	syncCmd.Flags().StringVar(&locationsFile, "locations-file", "", "YAML file overriding the built-in NYC location patterns")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	matcher, err := location.LoadMatcher(locationsFile)
	if err != nil {
		return fmt.Errorf("failed to load location patterns: %w", err)
	}

	fetcher := fetch.New(fetch.Options{
		Repo:  cfg.GitHubRepo,
		Path:  cfg.GitHubPath,
		Token: cfg.GitHubToken,
	})
	store := notion.New(notion.Options{
		Token:      cfg.NotionToken,
		DatabaseID: cfg.NotionDBID,
	})

	var notifier pipeline.Notifier
	if cfg.SlackWebhookURL != "" {
		notifier = slack.New(cfg.SlackWebhookURL)
	}

	summary, err := pipeline.Run(cmd.Context(), pipeline.Options{
		Fetcher:  fetcher,
		Store:    store,
		Notifier: notifier,
		Matcher:  matcher,
		AgesOnly: agesOnly,
		Verbose:  verbose,
	})
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintRunSummary(summary)
	return nil
}
