// Package slack delivers best-effort notifications for newly created
// entries through an incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/job-sync/internal/types"
)

// DefaultTimeout is the webhook request timeout. Notifications are
// fire-and-forget; a short budget keeps a slow webhook from dragging out
// the run.
const DefaultTimeout = 10 * time.Second

// Notifier posts messages to a Slack incoming webhook.
type Notifier struct {
	webhookURL string
	hc         *http.Client
}

// New builds a notifier for the given webhook URL.
func New(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		hc:         &http.Client{Timeout: DefaultTimeout},
	}
}

// NewWithClient builds a notifier with a caller-supplied HTTP client,
// primarily for tests.
func NewWithClient(webhookURL string, hc *http.Client) *Notifier {
	return &Notifier{webhookURL: webhookURL, hc: hc}
}

// message is the webhook payload.
type message struct {
	Text string `json:"text"`
}

// Notify posts one message for a newly created record. The returned error
// is informational; the orchestrator counts it but never aborts or rolls
// back on it.
func (n *Notifier) Notify(ctx context.Context, record types.JobRecord) error {
	payload, err := json.Marshal(message{Text: messageText(record)})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.hc.Do(req)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("post notification: HTTP status %d", resp.StatusCode)
	}
	return nil
}

// messageText renders the one-line notification for a record.
func messageText(r types.JobRecord) string {
	return fmt.Sprintf("New job added: %s | %s | %s | Age=%s | Location=%s",
		r.Title, r.Company, r.Key(), r.RawAge, r.Location)
}
