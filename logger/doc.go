// Package logger is the public API of logway. Most programs only need
// to import this package.
//
// A Logger is a named, immutable handle: With and Named return copies,
// so a Logger is safe for concurrent use without locking. The name is
// dot-delimited and hierarchical ("myapp.views.checkout"); it decides
// which setup's sinks receive the record.
//
// Emission is fire-and-forget. Records are handed to per-sink queues
// and delivered by background workers, so a slow or unreachable
// destination never blocks the calling goroutine:
//
//	logger.Configure("web", logger.Options{FilePath: "/var/log/app.log"})
//	log := logger.Get("myapp.views")
//	log.Info("request handled", logger.String("user", "alice"))
//
// Exception attaches the current goroutine's stack trace, which email
// sinks render in full:
//
//	if err := job.Run(); err != nil {
//	    log.Exception("job failed", err, logger.String("job", job.Name))
//	}
package logger
