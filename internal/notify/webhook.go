package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	defaultWebhookTimeout = 10 * time.Second
	defaultWebhookBackoff = 200 * time.Millisecond
	webhookRetries        = 2
)

var defaultWebhookClient = &http.Client{Timeout: defaultWebhookTimeout}

// WebhookNotifier posts {"email","code"} as JSON to a delivery endpoint such as a mail relay.
// 5xx responses and transport errors are retried with exponential backoff.
// A nil HTTPClient or non-positive Backoff falls back to the defaults.
type WebhookNotifier struct {
	URL        string
	Token      string
	HTTPClient *http.Client
	Backoff    time.Duration
}

// NewWebhookNotifier returns a notifier for url. token, when set, is sent as a bearer token.
func NewWebhookNotifier(url, token string) *WebhookNotifier {
	return &WebhookNotifier{
		URL:        url,
		Token:      token,
		HTTPClient: &http.Client{Timeout: defaultWebhookTimeout},
		Backoff:    defaultWebhookBackoff,
	}
}

type webhookPayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Notify sends the code. It does not log the code.
func (w *WebhookNotifier) Notify(ctx context.Context, email, code string) error {
	if w.URL == "" {
		return fmt.Errorf("notify: webhook URL not configured")
	}
	raw, err := json.Marshal(webhookPayload{Email: email, Code: code})
	if err != nil {
		return err
	}
	base := w.Backoff
	if base <= 0 {
		base = defaultWebhookBackoff
	}
	backoff := retry.WithMaxRetries(webhookRetries, retry.NewExponential(base))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		return w.post(ctx, raw)
	})
}

func (w *WebhookNotifier) post(ctx context.Context, raw []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if w.Token != "" {
		req.Header.Set("Authorization", "Bearer "+w.Token)
	}
	client := w.HTTPClient
	if client == nil {
		client = defaultWebhookClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return retry.RetryableError(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 == 2 {
		return nil
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	err = fmt.Errorf("notify: webhook failed status=%d body=%s", resp.StatusCode, string(b))
	if resp.StatusCode >= 500 {
		return retry.RetryableError(err)
	}
	return err
}
