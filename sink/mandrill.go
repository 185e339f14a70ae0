package sink

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quarryhill/logway/core"
)

const mandrillSendURL = "https://mandrillapp.com/api/1.0/messages/send.json"

// MandrillConfig holds configuration for the Mandrill email-API sink.
type MandrillConfig struct {
	// APIKey for the Mandrill transactional API (required)
	APIKey string
	// From address (required)
	From string
	// To addresses (at least one required)
	To []string
	// URL overrides the API endpoint, for tests
	URL string
	// Client overrides the HTTP client (default: 30s timeout)
	Client *http.Client
}

// MandrillSink delivers records as HTML email through the Mandrill
// transactional API. It is email-capable: a record attachment becomes
// an inline image plus a page-source attachment, matching the message
// shape the API expects.
type MandrillSink struct {
	apiKey string
	from   string
	to     []mandrillAddr
	url    string
	client *http.Client
}

type mandrillAddr struct {
	Email string `json:"email"`
}

type mandrillFile struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

type mandrillMessage struct {
	FromEmail   string         `json:"from_email"`
	To          []mandrillAddr `json:"to"`
	Subject     string         `json:"subject"`
	HTML        string         `json:"html"`
	Images      []mandrillFile `json:"images,omitempty"`
	Attachments []mandrillFile `json:"attachments,omitempty"`
}

// NewMandrillSink creates a Mandrill email sink.
func NewMandrillSink(cfg MandrillConfig) (*MandrillSink, error) {
	if cfg.APIKey == "" {
		return nil, &core.ConfigError{Component: "mandrill", Reason: "api key is required"}
	}
	if cfg.From == "" || len(cfg.To) == 0 {
		return nil, &core.ConfigError{Component: "mandrill", Reason: "from and to addresses are required"}
	}
	if cfg.URL == "" {
		cfg.URL = mandrillSendURL
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 30 * time.Second}
	}
	to := make([]mandrillAddr, len(cfg.To))
	for i, addr := range cfg.To {
		to[i] = mandrillAddr{Email: addr}
	}
	return &MandrillSink{
		apiKey: cfg.APIKey,
		from:   cfg.From,
		to:     to,
		url:    cfg.URL,
		client: cfg.Client,
	}, nil
}

// Kind returns KindMandrill.
func (s *MandrillSink) Kind() Kind { return KindMandrill }

// Send posts the message to the Mandrill API.
func (s *MandrillSink) Send(ctx context.Context, payload []byte, rec *core.Record) error {
	msg := mandrillMessage{
		FromEmail: s.from,
		To:        s.to,
		Subject:   emailSubject(rec),
		HTML:      string(payload),
	}
	if att := rec.Attachment; att != nil {
		msg.Images = []mandrillFile{{
			Type:    att.ContentType,
			Name:    att.Name,
			Content: base64.StdEncoding.EncodeToString(att.Data),
		}}
		if len(att.PageSource) > 0 {
			msg.Attachments = []mandrillFile{{
				Type:    "text/plain",
				Name:    "page_source.txt",
				Content: base64.StdEncoding.EncodeToString(att.PageSource),
			}}
		}
	}

	body, err := json.Marshal(struct {
		Key     string          `json:"key"`
		Message mandrillMessage `json:"message"`
	}{Key: s.apiKey, Message: msg})
	if err != nil {
		return transportErr(KindMandrill, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return transportErr(KindMandrill, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return transportErr(KindMandrill, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return transportErr(KindMandrill, fmt.Errorf("unexpected status %s", resp.Status))
	}
	return nil
}

// Close is a no-op.
func (s *MandrillSink) Close() error { return nil }
