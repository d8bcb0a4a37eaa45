// Package config provides environment-derived configuration for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Source repository defaults.
const (
	DefaultRepo = "SimplifyJobs/New-Grad-Positions"
	DefaultPath = "README.md"
)

// Config holds everything a sync run needs from the environment. Missing
// required values are a startup-time fatal; the optional webhook URL
// silently disables notification.
type Config struct {
	// Source
	GitHubRepo  string `validate:"required"`
	GitHubPath  string `validate:"required"`
	GitHubToken string // optional; relieves API rate limits

	// Store
	NotionToken string `validate:"required"`
	NotionDBID  string `validate:"required"`

	// Notification (optional)
	SlackWebhookURL string `validate:"omitempty,url"`
}

// envNames maps struct fields to their environment variables, for error
// messages that name what to set.
var envNames = map[string]string{
	"GitHubRepo":      "GITHUB_REPO",
	"GitHubPath":      "GITHUB_PATH",
	"NotionToken":     "NOTION_TOKEN",
	"NotionDBID":      "NOTION_DB_ID",
	"SlackWebhookURL": "SLACK_WEBHOOK_URL",
}

// FromEnv loads and validates configuration from the environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		GitHubRepo:      envOr("GITHUB_REPO", DefaultRepo),
		GitHubPath:      envOr("GITHUB_PATH", DefaultPath),
		GitHubToken:     os.Getenv("GH_PAT"),
		NotionToken:     os.Getenv("NOTION_TOKEN"),
		NotionDBID:      os.Getenv("NOTION_DB_ID"),
		SlackWebhookURL: os.Getenv("SLACK_WEBHOOK_URL"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration, naming the offending environment
// variable on failure.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].StructField()
		name := envNames[field]
		if name == "" {
			name = field
		}
		switch verrs[0].Tag() {
		case "required":
			return fmt.Errorf("config error: %s is required", name)
		case "url":
			return fmt.Errorf("config error: %s must be a valid URL", name)
		}
	}
	return fmt.Errorf("config error: %w", err)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
