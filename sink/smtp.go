package sink

import (
	"bytes"
	"context"

	"github.com/wneessen/go-mail"

	"github.com/quarryhill/logway/core"
)

// SMTPConfig holds configuration for the SMTP email sink.
type SMTPConfig struct {
	// Host of the mail server (required)
	Host string
	// Port of the mail server (default: 25)
	Port int
	// From address (required)
	From string
	// To addresses (at least one required)
	To []string
	// Username and Password enable plain SMTP auth when non-empty
	Username string
	Password string
	// SSL connects over implicit TLS instead of opportunistic STARTTLS
	SSL bool
}

// SMTPSink delivers records as HTML email over SMTP. It is
// email-capable: a record attachment is embedded into the message.
type SMTPSink struct {
	client *mail.Client
	from   string
	to     []string
}

// NewSMTPSink creates an SMTP email sink.
func NewSMTPSink(cfg SMTPConfig) (*SMTPSink, error) {
	if cfg.Host == "" {
		return nil, &core.ConfigError{Component: "smtp", Reason: "host is required"}
	}
	if cfg.From == "" || len(cfg.To) == 0 {
		return nil, &core.ConfigError{Component: "smtp", Reason: "from and to addresses are required"}
	}
	if cfg.Port == 0 {
		cfg.Port = 25
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	if cfg.SSL {
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, &core.ConfigError{Component: "smtp", Reason: err.Error()}
	}
	return &SMTPSink{client: client, from: cfg.From, to: cfg.To}, nil
}

// Kind returns KindSMTP.
func (s *SMTPSink) Kind() Kind { return KindSMTP }

// Send delivers the HTML payload as an email. The screenshot attachment,
// when present on the record, is embedded so the HTML body's cid
// reference resolves; page source rides along as a plain attachment.
func (s *SMTPSink) Send(ctx context.Context, payload []byte, rec *core.Record) error {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return transportErr(KindSMTP, err)
	}
	if err := m.To(s.to...); err != nil {
		return transportErr(KindSMTP, err)
	}
	m.Subject(emailSubject(rec))
	m.SetBodyString(mail.TypeTextHTML, string(payload))

	if att := rec.Attachment; att != nil {
		ct := mail.WithFileContentType(mail.ContentType(att.ContentType))
		if err := m.EmbedReader(att.Name, bytes.NewReader(att.Data), ct); err != nil {
			return transportErr(KindSMTP, err)
		}
		if len(att.PageSource) > 0 {
			if err := m.AttachReader("page_source.txt", bytes.NewReader(att.PageSource)); err != nil {
				return transportErr(KindSMTP, err)
			}
		}
	}

	return transportErr(KindSMTP, s.client.DialAndSendWithContext(ctx, m))
}

// Close is a no-op; connections are per-delivery.
func (s *SMTPSink) Close() error { return nil }
