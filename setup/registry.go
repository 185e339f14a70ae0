package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/quarryhill/logway/capture"
	"github.com/quarryhill/logway/core"
	"github.com/quarryhill/logway/dispatch"
	"github.com/quarryhill/logway/intercept"
)

// hostname is resolved once and stamped on records that lack it.
var hostname, _ = os.Hostname()

// state is the complete, immutable configuration snapshot. Every
// mutation builds a new state and installs it atomically; the emission
// path only ever loads it.
type state struct {
	setups   map[string]*Setup
	rules    *intercept.Rules
	active   string
	provider capture.Provider
}

func (st *state) clone() *state {
	setups := make(map[string]*Setup, len(st.setups))
	for k, v := range st.setups {
		setups[k] = v
	}
	return &state{setups: setups, rules: st.rules, active: st.active, provider: st.provider}
}

// Registry owns the process-wide logging state: registered setups, the
// active profile, interception rules, and the capture provider.
type Registry struct {
	mu       sync.Mutex // serializes mutations; never held on the emission path
	state    atomic.Pointer[state]
	fallback *dispatch.Fallback
}

// NewRegistry creates an empty registry. Records emitted before the
// first registration are dropped silently.
func NewRegistry() *Registry {
	r := &Registry{fallback: dispatch.NewFallback(nil)}
	r.state.Store(&state{
		setups: map[string]*Setup{},
		rules:  intercept.NewRules(nil),
	})
	return r
}

// Register stores an immutable profile under name, activating its
// sinks. A previous registration of the same name is replaced — last
// registration wins — and its queues drain in the background instead of
// being aborted.
func (r *Registry) Register(name string, cfgs []SinkConfig, level core.Level) error {
	if name == "" {
		return &core.ConfigError{Component: "setup", Reason: "setup name is required"}
	}

	sinks := make([]*boundSink, 0, len(cfgs))
	for _, cfg := range cfgs {
		bs, err := cfg.build(r.fallback)
		if err != nil {
			for _, built := range sinks {
				built.queue.Close()
			}
			return err
		}
		sinks = append(sinks, bs)
	}
	s := &Setup{name: name, level: level, sinks: sinks}

	r.mu.Lock()
	st := r.state.Load().clone()
	old := st.setups[name]
	st.setups[name] = s
	r.state.Store(st)
	r.mu.Unlock()

	if old != nil {
		go old.close()
	}
	return nil
}

// Reconfigure atomically replaces an existing profile. It is Register
// under the name the admin surface documents.
func (r *Registry) Reconfigure(name string, cfgs []SinkConfig, level core.Level) error {
	return r.Register(name, cfgs, level)
}

// Resolve returns the setup registered under name.
func (r *Registry) Resolve(name string) (*Setup, error) {
	s, ok := r.state.Load().setups[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownSetup, name)
	}
	return s, nil
}

// Configure registers the named preset profile from opts, makes it the
// active setup, and installs the interception rules. A non-preset name
// must have been registered beforehand; otherwise core.ErrUnknownSetup
// is returned. Configure is idempotent: calling it again rebuilds the
// profile and swaps it in atomically.
func (r *Registry) Configure(name string, opts Options) error {
	if p, ok := presets[name]; ok {
		level := p.level
		if opts.Level != "" {
			level = core.ParseLevel(opts.Level)
		}
		if err := r.Register(name, p.sinkConfigs(opts), level); err != nil {
			return err
		}
	} else if _, err := r.Resolve(name); err != nil {
		return err
	}

	r.mu.Lock()
	st := r.state.Load().clone()
	st.active = name
	st.provider = opts.CaptureProvider
	st.rules = buildRules(st, name, opts)
	r.state.Store(st)
	r.mu.Unlock()

	r.emitPreamble(name, opts)
	return nil
}

// emitPreamble announces the activated configuration as the setup's
// first record, so every destination's stream starts with the process
// identity and invocation arguments.
func (r *Registry) emitPreamble(name string, opts Options) {
	app := opts.App
	if app == "" {
		app = filepath.Base(os.Args[0])
	}
	_ = r.Emit(&core.Record{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Name:    name,
		Message: "logging configured",
		Fields: []core.Field{
			{Key: "app", Type: core.StringType, Str: app},
			{Key: "setup", Type: core.StringType, Str: name},
			{Key: "pid", Type: core.IntType, Int64: int64(os.Getpid())},
			{Key: "args", Type: core.StringType, Str: strings.Join(os.Args[1:], " ")},
		},
	})
}

// buildRules assembles the interception rule set: every registered
// setup name routes to itself, extra modules route to the configured
// setup, ignored modules are dropped, explicit rules come last.
func buildRules(st *state, name string, opts Options) *intercept.Rules {
	var rules []intercept.Rule
	for registered := range st.setups {
		rules = append(rules, intercept.Rule{Prefix: registered, Setup: registered})
	}
	for _, m := range opts.ExtraModules {
		rules = append(rules, intercept.Rule{Prefix: m, Setup: name})
	}
	for _, m := range opts.IgnoreModules {
		rules = append(rules, intercept.Rule{Prefix: m, Ignore: true})
	}
	return intercept.NewRules(append(rules, opts.Rules...))
}

// SetLevel changes the active setup's minimum severity. Queues and
// sinks are untouched; only the gate moves.
func (r *Registry) SetLevel(level core.Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.state.Load()
	s, ok := st.setups[st.active]
	if !ok {
		return
	}
	next := st.clone()
	next.setups[st.active] = s.withLevel(level)
	r.state.Store(next)
}

// SetCaptureProvider attaches (or, with nil, detaches) the screenshot
// provider consulted for error-level email deliveries.
func (r *Registry) SetCaptureProvider(p capture.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := r.state.Load().clone()
	next.provider = p
	r.state.Store(next)
}

// Emit routes a record to the sinks of whichever setup the interception
// rules select, falling back to the active setup for unmatched names.
// A record with no matching setup is dropped with no error: logging
// must never be the reason an unrelated call fails. The returned error
// is non-nil only for Block-policy enqueue timeouts.
func (r *Registry) Emit(rec *core.Record) error {
	st := r.state.Load()

	target, matched, denied := st.rules.Match(rec.Name)
	if denied {
		return nil
	}
	if !matched {
		target = st.active
	}
	s, ok := st.setups[target]
	if !ok {
		return nil
	}

	if rec.Machine == "" {
		rec.Machine = hostname
	}
	return s.dispatch(rec, st.provider, r.fallback)
}

// Flush blocks until all queues of the active setup are empty or the
// timeout elapses, returning the number of records still pending. A
// non-zero remainder has already been accounted as dropped work by the
// owning queues' statistics rather than silently lost.
func (r *Registry) Flush(timeout time.Duration) int {
	st := r.state.Load()
	s, ok := st.setups[st.active]
	if !ok {
		return 0
	}
	remaining := s.flush(timeout)
	if remaining > 0 {
		r.fallback.Warnf("flush timed out with %d records pending", remaining)
	}
	return remaining
}

// Close drains and closes every registered setup and resets the
// registry to its empty state.
func (r *Registry) Close() error {
	r.mu.Lock()
	st := r.state.Load()
	r.state.Store(&state{
		setups: map[string]*Setup{},
		rules:  intercept.NewRules(nil),
	})
	r.mu.Unlock()

	var firstErr error
	for _, s := range st.setups {
		if err := s.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
