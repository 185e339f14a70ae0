package sink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quarryhill/logway/core"
)

// WebhookConfig holds configuration for the HTTP webhook sink.
type WebhookConfig struct {
	// URL to POST payloads to (required)
	URL string
	// ContentType of the POST body (default: text/plain)
	ContentType string
	// Client overrides the HTTP client (default: 30s timeout)
	Client *http.Client
}

// WebhookSink POSTs each rendered payload to a log aggregator URL.
type WebhookSink struct {
	url         string
	contentType string
	client      *http.Client
}

// NewWebhookSink creates an HTTP webhook sink.
func NewWebhookSink(cfg WebhookConfig) (*WebhookSink, error) {
	if cfg.URL == "" {
		return nil, &core.ConfigError{Component: "http", Reason: "url is required"}
	}
	if cfg.ContentType == "" {
		cfg.ContentType = "text/plain"
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 30 * time.Second}
	}
	return &WebhookSink{url: cfg.URL, contentType: cfg.ContentType, client: cfg.Client}, nil
}

// Kind returns KindWebhook.
func (s *WebhookSink) Kind() Kind { return KindWebhook }

// Send POSTs the payload. Any non-2xx response is a transport failure.
func (s *WebhookSink) Send(ctx context.Context, payload []byte, _ *core.Record) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return transportErr(KindWebhook, err)
	}
	req.Header.Set("Content-Type", s.contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return transportErr(KindWebhook, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return transportErr(KindWebhook, fmt.Errorf("unexpected status %s", resp.Status))
	}
	return nil
}

// Close is a no-op.
func (s *WebhookSink) Close() error { return nil }
