package alert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	corealert "github.com/gridwerk/microgrid/core/alert"
)

// WebhookEscalator posts critical alerts to an incident webhook
// (Slack-compatible payload).
type WebhookEscalator struct {
	url    string
	client *http.Client
}

// NewWebhookEscalator creates an escalator for the given webhook URL.
func NewWebhookEscalator(url string) *WebhookEscalator {
	return &WebhookEscalator{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Escalate posts the alert. A non-2xx response is an error.
func (e *WebhookEscalator) Escalate(a corealert.Alert) error {
	payload := map[string]any{
		"text": fmt.Sprintf("CRITICAL ALERT: %s", a.Message),
		"attachments": []map[string]any{{
			"color": "danger",
			"fields": []map[string]any{
				{"title": "Type", "value": string(a.Type), "short": true},
				{"title": "Time", "value": a.Timestamp.Format(time.RFC3339), "short": true},
			},
		}},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := e.client.Post(e.url, "application/json", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook status: %s", resp.Status)
	}
	return nil
}
