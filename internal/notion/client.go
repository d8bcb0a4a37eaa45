// Package notion is the store collaborator: one database page per job
// posting, queried for the reconciliation snapshot and written through for
// creates and age updates. The database has no uniqueness constraint of its
// own; deduplication is entirely the reconciler's job.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jonathan/job-sync/internal/age"
	"github.com/jonathan/job-sync/internal/types"
)

// apiVersion is sent as Notion-Version on every request.
const apiVersion = "2022-06-28"

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// requestsPerSecond is the API budget; Notion allows an average of three
// requests per second per integration.
const requestsPerSecond = 3

// Property names in the target database.
const (
	propTitle      = "Job Title"
	propCompany    = "Company"
	propSourceLink = "Source Link"
	propAge        = "Age"
	propLocation   = "Location"
)

// Field caps enforced on write; Notion rejects oversized property values.
const (
	maxTitleLen   = 100
	maxCompanyLen = 200
)

// Error represents a failed store operation. Individual create/update
// failures are collected by the orchestrator, never fatal; a failed
// snapshot listing is.
type Error struct {
	Op         string
	StatusCode int
	Body       string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store error in %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("store error in %s: HTTP status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the store client.
type Options struct {
	Token      string
	DatabaseID string
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
	// HTTPClient overrides the default client, primarily for tests.
	HTTPClient *http.Client
	// BaseURL overrides the API origin, primarily for tests.
	BaseURL string
}

// Client talks to the pages API. All calls wait on a shared rate limiter
// before hitting the network.
type Client struct {
	opts    Options
	hc      *http.Client
	base    string
	limiter *rate.Limiter
}

// New builds a store client.
func New(opts Options) *Client {
	base := opts.BaseURL
	if base == "" {
		base = "https://api.notion.com"
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		opts:    opts,
		hc:      hc,
		base:    base,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// do executes one API call and decodes the response into out (when out is
// non-nil).
func (c *Client) do(ctx context.Context, op, method, path string, payload, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &Error{Op: op, Cause: err}
	}

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return &Error{Op: op, Cause: err}
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return &Error{Op: op, Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return &Error{Op: op, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: op, StatusCode: resp.StatusCode, Cause: err}
	}

	if resp.StatusCode >= 400 {
		return &Error{Op: op, StatusCode: resp.StatusCode, Body: excerpt(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &Error{Op: op, StatusCode: resp.StatusCode, Cause: err}
		}
	}
	return nil
}

// queryResponse is the slice of the database query payload we consume.
type queryResponse struct {
	Results []struct {
		ID         string                  `json:"id"`
		Properties map[string]propertyBody `json:"properties"`
	} `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

type propertyBody struct {
	URL      *string    `json:"url"`
	Title    []richText `json:"title"`
	RichText []richText `json:"rich_text"`
}

type richText struct {
	PlainText string   `json:"plain_text"`
	Text      *textObj `json:"text,omitempty"`
}

type textObj struct {
	Content string `json:"content"`
}

// ListEntries returns the full store snapshot, following cursor pagination.
// Pages without a source link are skipped; they cannot participate in
// matching.
func (c *Client) ListEntries(ctx context.Context) ([]types.PersistedEntry, error) {
	var entries []types.PersistedEntry
	cursor := ""

	for {
		payload := map[string]any{}
		if cursor != "" {
			payload["start_cursor"] = cursor
		}

		var page queryResponse
		path := fmt.Sprintf("/v1/databases/%s/query", c.opts.DatabaseID)
		if err := c.do(ctx, "list entries", http.MethodPost, path, payload, &page); err != nil {
			return nil, err
		}

		for _, result := range page.Results {
			link := result.Properties[propSourceLink]
			if link.URL == nil || strings.TrimSpace(*link.URL) == "" {
				continue
			}
			entries = append(entries, types.PersistedEntry{
				PageID:     result.ID,
				SourceLink: *link.URL,
				AgeDays:    age.Parse(plainText(result.Properties[propAge].RichText)),
			})
		}

		if !page.HasMore || page.NextCursor == "" {
			return entries, nil
		}
		cursor = page.NextCursor
	}
}

// createResponse carries the page ID assigned by the store.
type createResponse struct {
	ID string `json:"id"`
}

// CreateEntry creates one page for the record and returns the assigned page
// ID.
func (c *Client) CreateEntry(ctx context.Context, record types.JobRecord) (string, error) {
	payload := map[string]any{
		"parent":     map[string]any{"database_id": c.opts.DatabaseID},
		"properties": recordProperties(record),
	}

	var resp createResponse
	if err := c.do(ctx, "create entry", http.MethodPost, "/v1/pages", payload, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// UpdateAge patches the stored age of an existing page.
func (c *Client) UpdateAge(ctx context.Context, pageID string, ageDays types.Age) error {
	payload := map[string]any{
		"properties": map[string]any{
			propAge: richTextProp(ageDays.String()),
		},
	}
	return c.do(ctx, "update age", http.MethodPatch, "/v1/pages/"+pageID, payload, nil)
}

// recordProperties builds the page property payload for a record.
func recordProperties(record types.JobRecord) map[string]any {
	ageText := record.RawAge
	if record.AgeDays.Known {
		ageText = record.AgeDays.String()
	}
	return map[string]any{
		propTitle: map[string]any{
			"title": []map[string]any{{"text": map[string]any{"content": truncate(record.Title, maxTitleLen)}}},
		},
		propCompany:    richTextProp(truncate(record.Company, maxCompanyLen)),
		propSourceLink: map[string]any{"url": record.Key()},
		propAge:        richTextProp(ageText),
		propLocation:   richTextProp(record.Location),
	}
}

func richTextProp(content string) map[string]any {
	return map[string]any{
		"rich_text": []map[string]any{{"text": map[string]any{"content": content}}},
	}
}

func plainText(parts []richText) string {
	var sb strings.Builder
	for _, p := range parts {
		if p.PlainText != "" {
			sb.WriteString(p.PlainText)
		} else if p.Text != nil {
			sb.WriteString(p.Text.Content)
		}
	}
	return sb.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func excerpt(body []byte) string {
	const maxExcerpt = 200
	s := string(body)
	if len(s) > maxExcerpt {
		s = s[:maxExcerpt] + "..."
	}
	return s
}
