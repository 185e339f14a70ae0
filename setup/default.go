package setup

import (
	"time"

	"github.com/quarryhill/logway/capture"
	"github.com/quarryhill/logway/core"
)

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by the package-level
// functions here and by the logger facade.
func Default() *Registry { return defaultRegistry }

// Configure activates the named preset profile on the default registry.
func Configure(name string, opts Options) error {
	return defaultRegistry.Configure(name, opts)
}

// Register stores a custom profile on the default registry.
func Register(name string, cfgs []SinkConfig, level core.Level) error {
	return defaultRegistry.Register(name, cfgs, level)
}

// Reconfigure replaces an existing profile on the default registry.
func Reconfigure(name string, cfgs []SinkConfig, level core.Level) error {
	return defaultRegistry.Reconfigure(name, cfgs, level)
}

// SetLevel adjusts the active setup's minimum severity at runtime.
func SetLevel(level core.Level) { defaultRegistry.SetLevel(level) }

// SetCaptureProvider installs the screenshot provider for error emails.
func SetCaptureProvider(p capture.Provider) { defaultRegistry.SetCaptureProvider(p) }

// Flush waits for the active setup's queues to empty.
func Flush(timeout time.Duration) int { return defaultRegistry.Flush(timeout) }

// Close drains and shuts down every registered setup.
func Close() error { return defaultRegistry.Close() }
