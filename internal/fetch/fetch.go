// Package fetch retrieves the raw source markdown from the GitHub contents
// API.
package fetch

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "job-sync/1.0"

// acceptHeader pins the contents API response shape.
const acceptHeader = "application/vnd.github.v3+json"

// Error represents a failed source fetch. A fetch failure aborts the whole
// run; there is no partial sync from stale data.
type Error struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the source fetcher.
type Options struct {
	// Repo is the "owner/name" GitHub repository holding the listing.
	Repo string
	// Path is the file path within the repository.
	Path string
	// Token is an optional bearer token; it only relieves rate limits.
	Token string
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
	// HTTPClient overrides the default client, primarily for tests.
	HTTPClient *http.Client
	// BaseURL overrides the GitHub API origin, primarily for tests.
	BaseURL string
}

// Client fetches the source document.
type Client struct {
	opts Options
	hc   *http.Client
	url  string
}

// New builds a source fetcher for the configured repository file.
func New(opts Options) *Client {
	base := opts.BaseURL
	if base == "" {
		base = "https://api.github.com"
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
		opts: opts,
		hc:   hc,
		url:  fmt.Sprintf("%s/repos/%s/contents/%s", base, opts.Repo, opts.Path),
	}
}

// contentsResponse is the slice of the contents API payload we consume.
type contentsResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// FetchSource retrieves and decodes the raw markdown document.
func (c *Client) FetchSource(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", &Error{URL: c.url, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", DefaultUserAgent)
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", &Error{URL: c.url, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: c.url, StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &Error{
			URL:        c.url,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	var contents contentsResponse
	if err := json.Unmarshal(body, &contents); err != nil {
		return "", &Error{URL: c.url, StatusCode: resp.StatusCode, Message: "failed to decode contents payload", Cause: err}
	}

	// The contents API base64-encodes file bodies with embedded newlines.
	decoded, err := base64.StdEncoding.DecodeString(stripNewlines(contents.Content))
	if err != nil {
		return "", &Error{URL: c.url, StatusCode: resp.StatusCode, Message: "failed to decode file content", Cause: err}
	}

	return string(decoded), nil
}

func stripNewlines(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
