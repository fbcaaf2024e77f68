package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Webhook posts notifications to a single configured endpoint.
type Webhook struct {
	URL    string
	Client *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *Webhook) Send(ctx context.Context, tenantID, to, message string) (bool, string) {
	body, _ := json.Marshal(map[string]string{
		"tenant_id": tenantID,
		"to":        to,
		"message":   message,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return false, err.Error()
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return false, err.Error()
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, resp.Status + ": " + string(raw)
	}
	return true, string(raw)
}

// LogOnly records sends instead of delivering them. Used when no webhook URL
// is configured (local development).
type LogOnly struct {
	Log *zap.Logger
}

func (l *LogOnly) Send(ctx context.Context, tenantID, to, message string) (bool, string) {
	l.Log.Info("notification (log only)",
		zap.String("tenant_id", tenantID), zap.String("to", to), zap.String("message", message))
	return true, "logged"
}
