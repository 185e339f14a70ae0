package logger

import (
	"time"

	"github.com/quarryhill/logway/capture"
	"github.com/quarryhill/logway/core"
	"github.com/quarryhill/logway/setup"
)

// Options re-exports the configuration surface so simple programs only
// import this package.
type Options = setup.Options

// root is the unnamed logger behind the package-level emit functions.
// Its records carry no name and route to whichever setup is active.
var root = Get("")

// Configure activates the named setup profile.
func Configure(name string, opts Options) error { return setup.Configure(name, opts) }

// SetLevel adjusts the active setup's minimum severity at runtime.
func SetLevel(level Level) { setup.SetLevel(level) }

// SetCaptureProvider installs the screenshot provider consulted for
// error-level email deliveries.
func SetCaptureProvider(p capture.Provider) { setup.SetCaptureProvider(p) }

// Flush waits for the active setup's queues to empty, returning the
// number of records still pending when the timeout elapsed.
func Flush(timeout time.Duration) int { return setup.Flush(timeout) }

// Close drains and shuts down every registered setup. Call it on
// process exit so queued records are not lost.
func Close() error { return setup.Close() }

// Debug logs at DEBUG severity on the unnamed logger.
func Debug(msg string, fields ...core.Field) { root.Debug(msg, fields...) }

// Info logs at INFO severity on the unnamed logger.
func Info(msg string, fields ...core.Field) { root.Info(msg, fields...) }

// Warning logs at WARNING severity on the unnamed logger.
func Warning(msg string, fields ...core.Field) { root.Warning(msg, fields...) }

// Error logs at ERROR severity on the unnamed logger.
func Error(msg string, fields ...core.Field) { root.Error(msg, fields...) }

// Critical logs at CRITICAL severity on the unnamed logger.
func Critical(msg string, fields ...core.Field) { root.Critical(msg, fields...) }

// Exception logs err with a stack trace on the unnamed logger.
func Exception(msg string, err error, fields ...core.Field) { root.Exception(msg, err, fields...) }
