package setup

import (
	"io"
	"os"
	"time"

	"github.com/quarryhill/logway/capture"
	"github.com/quarryhill/logway/core"
	"github.com/quarryhill/logway/dispatch"
	"github.com/quarryhill/logway/formatter"
	"github.com/quarryhill/logway/intercept"
	"github.com/quarryhill/logway/sink"
)

// SinkConfig describes one sink of a setup: its kind, destination
// parameters, severity threshold, and queue tuning. It is immutable for
// the lifetime of the registration that used it.
type SinkConfig struct {
	// Kind selects the sink variant
	Kind sink.Kind
	// MinLevel is the sink's minimum severity
	MinLevel core.Level
	// Capacity of the dispatch queue (default: 1000)
	Capacity int
	// Workers draining the queue (default: 1; >1 relaxes FIFO)
	Workers int
	// Overflow is the back-pressure policy (default: DropNewest)
	Overflow dispatch.OverflowPolicy
	// BlockTimeout bounds Block-policy enqueues
	BlockTimeout time.Duration
	// Retry bounds delivery attempts
	Retry dispatch.RetryPolicy

	// Destination parameters; only the field matching Kind is read.
	Writer   io.Writer // console (default: stderr)
	File     sink.FileConfig
	Syslog   sink.SyslogConfig // syslog and tls-syslog
	SMTP     sink.SMTPConfig
	Mandrill sink.MandrillConfig
	Webhook  sink.WebhookConfig
	SNS      sink.SNSConfig
}

// build activates the sink and its queue. The formatter is chosen by
// destination kind; terminal detection for console happens here, once.
func (c SinkConfig) build(fallback *dispatch.Fallback) (*boundSink, error) {
	var (
		s   sink.Sink
		err error
	)
	switch c.Kind {
	case sink.KindConsole:
		w := c.Writer
		if w == nil {
			w = os.Stderr
		}
		s = sink.NewConsoleSink(w)
	case sink.KindFile:
		s, err = sink.NewFileSink(c.File)
	case sink.KindSyslog:
		s, err = sink.NewSyslogSink(c.Syslog)
	case sink.KindTLSSyslog:
		s, err = sink.NewTLSSyslogSink(c.Syslog)
	case sink.KindSMTP:
		s, err = sink.NewSMTPSink(c.SMTP)
	case sink.KindMandrill:
		s, err = sink.NewMandrillSink(c.Mandrill)
	case sink.KindWebhook:
		s, err = sink.NewWebhookSink(c.Webhook)
	case sink.KindSNS:
		s, err = sink.NewSNSSink(c.SNS)
	default:
		return nil, &core.ConfigError{Component: "setup", Reason: "unknown sink kind"}
	}
	if err != nil {
		return nil, err
	}

	return &boundSink{
		sink:     s,
		minLevel: c.MinLevel,
		fmt:      c.formatter(),
		queue: dispatch.New(s, dispatch.Config{
			Capacity:     c.Capacity,
			Workers:      c.Workers,
			Overflow:     c.Overflow,
			BlockTimeout: c.BlockTimeout,
			Retry:        c.Retry,
			Fallback:     fallback,
		}),
	}, nil
}

func (c SinkConfig) formatter() formatter.Formatter {
	switch {
	case c.Kind.Email():
		return formatter.NewHTMLFormatter(formatter.Config{})
	case c.Kind == sink.KindConsole:
		if f, ok := c.Writer.(*os.File); ok && formatter.IsTerminal(f) {
			return formatter.NewColorFormatter(formatter.Config{})
		}
		if c.Writer == nil && formatter.IsTerminal(os.Stderr) {
			return formatter.NewColorFormatter(formatter.Config{})
		}
		return formatter.NewTextFormatter(formatter.Config{})
	default:
		return formatter.NewTextFormatter(formatter.Config{})
	}
}

// Options is the configuration surface consumed by Configure. Zero
// values mean "not configured": preset sinks whose destination
// parameters are missing are skipped rather than failing, matching how
// deployments enable sinks piecemeal.
type Options struct {
	// App names the application; it becomes the syslog tag
	App string
	// Level overrides the preset's default minimum severity ("" keeps it)
	Level string

	// ConsoleWriter overrides stderr for the console sink
	ConsoleWriter io.Writer
	// FilePath enables the rotating-file sink
	FilePath string
	// Syslog enables the syslog sink when Host is set
	Syslog sink.SyslogConfig
	// TLSSyslog enables the TLS syslog sink when Host is set
	TLSSyslog sink.SyslogConfig
	// Mandrill enables the email-API sink when APIKey is set
	Mandrill sink.MandrillConfig
	// SMTP enables the SMTP sink when Host is set and Mandrill is not
	// configured
	SMTP sink.SMTPConfig
	// WebhookURL enables the HTTP webhook sink
	WebhookURL string
	// SNSTopicARN enables the cloud-notification sink
	SNSTopicARN string

	// ExtraModules are logger-name prefixes routed to this setup
	ExtraModules []string
	// IgnoreModules are logger-name prefixes dropped entirely
	IgnoreModules []string
	// Rules are explicit interception rules, appended after the lists
	Rules []intercept.Rule

	// CaptureProvider attaches screenshot capture to error-level email
	CaptureProvider capture.Provider
}
