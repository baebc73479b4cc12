// Package notify delivers build results to an external webhook so CI or a
// site host can react to navigation changes without polling.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Webhook POSTs JSON payloads to a configured URL. An empty URL disables
// delivery entirely; Send becomes a no-op.
type Webhook struct {
	url        string
	log        *slog.Logger
	httpClient *http.Client
}

func NewWebhook(url string, timeout time.Duration, log *slog.Logger) *Webhook {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Webhook{
		url: url,
		log: log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Enabled reports whether a destination URL is configured.
func (w *Webhook) Enabled() bool {
	return w != nil && w.url != ""
}

// Send delivers payload as JSON, retrying transient failures with backoff.
func (w *Webhook) Send(ctx context.Context, payload any) error {
	if !w.Enabled() {
		return nil
	}

	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		lastErr = w.post(ctx, payload)
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		w.log.Warn("retryable webhook error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}

func (w *Webhook) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}
	return nil
}

// Close releases resources.
func (w *Webhook) Close() {
	w.httpClient.CloseIdleConnections()
}
