package sink

import (
	"context"
	"fmt"

	"github.com/quarryhill/logway/core"
)

// Kind identifies one of the closed set of sink variants.
type Kind uint8

const (
	KindConsole Kind = iota
	KindFile
	KindSyslog
	KindTLSSyslog
	KindSMTP
	KindMandrill
	KindWebhook
	KindSNS
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConsole:
		return "console"
	case KindFile:
		return "file"
	case KindSyslog:
		return "syslog"
	case KindTLSSyslog:
		return "tls-syslog"
	case KindSMTP:
		return "smtp"
	case KindMandrill:
		return "mandrill"
	case KindWebhook:
		return "http"
	case KindSNS:
		return "sns"
	default:
		return "unknown"
	}
}

// Email reports whether the kind delivers email and therefore accepts
// record attachments.
func (k Kind) Email() bool {
	return k == KindSMTP || k == KindMandrill
}

// Sink is a destination-specific delivery unit. Send performs exactly
// one blocking delivery attempt for the rendered payload; rec carries
// the originating record for sinks that derive subjects or attachments
// from it.
type Sink interface {
	Kind() Kind
	Send(ctx context.Context, payload []byte, rec *core.Record) error
	Close() error
}

// transportErr wraps err as a core.TransportError tagged with the kind.
func transportErr(k Kind, err error) error {
	if err == nil {
		return nil
	}
	return &core.TransportError{Sink: k.String(), Err: err}
}

// emailSubject builds the subject line used by email-capable sinks.
func emailSubject(rec *core.Record) string {
	return fmt.Sprintf("%s %s %s", rec.Machine, rec.Name, rec.Level)
}
