// Package sink provides destination-specific delivery units. A Sink
// accepts a rendered payload (plus the record it came from, for
// destinations that need subject lines or attachments) and performs one
// blocking delivery attempt.
//
// Sinks never retry and never queue: failure isolation, retry with
// backoff, and buffering all live in the dispatch package, which sits in
// front of every sink. A Send error is therefore a single failed
// transport attempt, wrapped in core.TransportError.
//
// The set of sink kinds is closed and carried as an explicit Kind tag so
// callers can switch on capability (KindSMTP and KindMandrill are the
// email-capable kinds that accept attachments) without type inspection.
//
// Network sinks (syslog, TLS syslog) connect lazily on first Send so
// that an unreachable host is a transport fault handled by dispatch
// retry, not a configuration failure.
package sink
