package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Webhook posts each lead as JSON to a mailing-list or CRM endpoint.
type Webhook struct {
	URL  string
	HTTP *http.Client
}

var _ Sink = (*Webhook)(nil)

// NewWebhook returns a webhook sink using http.DefaultClient.
func NewWebhook(url string) *Webhook {
	return &Webhook{
		URL:  strings.TrimSpace(url),
		HTTP: http.DefaultClient,
	}
}

// Name identifies the sink in logs.
func (w *Webhook) Name() string { return "webhook" }

type webhookPayload struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Source     string `json:"source"`
	CapturedAt string `json:"captured_at"`
}

// Deliver POSTs the lead. Any non-2xx status is an error.
func (w *Webhook) Deliver(ctx context.Context, lead Lead) error {
	if w.URL == "" {
		return fmt.Errorf("webhook url is empty")
	}
	body, err := json.Marshal(webhookPayload{
		ID:         lead.ID,
		Email:      lead.Email,
		Role:       lead.Role.String(),
		Source:     lead.Source,
		CapturedAt: lead.CapturedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encode lead: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	client := w.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook responded %s", resp.Status)
	}
	return nil
}
