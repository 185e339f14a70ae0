// Package capture defines the provider hook for attaching auxiliary
// evidence — typically a browser screenshot — to error-level email
// deliveries.
//
// Capture runs synchronously on the emission path, before the record is
// enqueued: the evidence depends on live external state (a browser
// session) that may not outlive the call, so it cannot be deferred to a
// dispatch worker. Providers must therefore complete or fail fast. A
// capture failure never blocks delivery; the record goes out without
// the attachment and a diagnostic note explains the omission.
package capture

import (
	"context"

	"github.com/quarryhill/logway/core"
)

// Provider produces an attachment for a qualifying record.
type Provider interface {
	Capture(ctx context.Context) (*core.Attachment, error)
}

// Func adapts an ordinary function to the Provider interface.
type Func func(ctx context.Context) (*core.Attachment, error)

// Capture calls f.
func (f Func) Capture(ctx context.Context) (*core.Attachment, error) {
	return f(ctx)
}
