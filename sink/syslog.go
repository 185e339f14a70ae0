package sink

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/RackSec/srslog"

	"github.com/quarryhill/logway/core"
)

// SyslogConfig holds configuration for the syslog and TLS syslog sinks.
type SyslogConfig struct {
	// Host of the syslog collector (required)
	Host string
	// Port of the syslog collector (required)
	Port int
	// Tag stamped on every message (default: "logway")
	Tag string
	// CertsDir holds PEM-encoded CA certificates; TLS syslog only
	CertsDir string
}

// SyslogSink delivers payloads to a syslog collector over UDP, or over
// TCP with TLS when constructed via NewTLSSyslogSink. The connection is
// established lazily on first Send so an unreachable collector surfaces
// as a transport fault, not a configuration failure.
type SyslogSink struct {
	kind    Kind
	network string
	addr    string
	tag     string
	tlsCfg  *tls.Config

	mu sync.Mutex
	w  *srslog.Writer
}

// NewSyslogSink creates a plain UDP syslog sink.
func NewSyslogSink(cfg SyslogConfig) (*SyslogSink, error) {
	if err := cfg.validate(KindSyslog); err != nil {
		return nil, err
	}
	return &SyslogSink{
		kind:    KindSyslog,
		network: "udp",
		addr:    net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		tag:     cfg.tagOrDefault(),
	}, nil
}

// NewTLSSyslogSink creates a syslog sink over TCP with TLS. CA
// certificates are read from every .pem file in cfg.CertsDir; an empty
// dir falls back to the system root pool.
func NewTLSSyslogSink(cfg SyslogConfig) (*SyslogSink, error) {
	if err := cfg.validate(KindTLSSyslog); err != nil {
		return nil, err
	}
	tlsCfg := &tls.Config{}
	if cfg.CertsDir != "" {
		pool, err := loadCertPool(cfg.CertsDir)
		if err != nil {
			return nil, err
		}
		tlsCfg.RootCAs = pool
	}
	return &SyslogSink{
		kind:    KindTLSSyslog,
		network: "tcp+tls",
		addr:    net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		tag:     cfg.tagOrDefault(),
		tlsCfg:  tlsCfg,
	}, nil
}

func (c SyslogConfig) validate(k Kind) error {
	if c.Host == "" {
		return &core.ConfigError{Component: k.String(), Reason: "host is required"}
	}
	if c.Port <= 0 || c.Port > 65535 {
		return &core.ConfigError{Component: k.String(), Reason: "port out of range"}
	}
	return nil
}

func (c SyslogConfig) tagOrDefault() string {
	if c.Tag == "" {
		return "logway"
	}
	return c.Tag
}

func loadCertPool(dir string) (*x509.CertPool, error) {
	pems, err := filepath.Glob(filepath.Join(dir, "*.pem"))
	if err != nil || len(pems) == 0 {
		return nil, &core.ConfigError{Component: "tls-syslog", Reason: "no .pem certificates in " + dir}
	}
	pool := x509.NewCertPool()
	for _, p := range pems {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, &core.ConfigError{Component: "tls-syslog", Reason: err.Error()}
		}
		if !pool.AppendCertsFromPEM(data) {
			return nil, &core.ConfigError{Component: "tls-syslog", Reason: "invalid PEM data in " + p}
		}
	}
	return pool, nil
}

// Kind returns KindSyslog or KindTLSSyslog.
func (s *SyslogSink) Kind() Kind { return s.kind }

// Send writes the payload at the syslog severity matching the record's
// level. srslog reconnects internally on a broken connection.
//
// Cancellation is honored between deliveries only: a canceled context
// aborts before dialing or writing, but srslog exposes no deadline
// hook, so a write already blocked on a stalled TCP collector runs to
// completion and can hold a closing queue past its drain timeout by
// one write.
func (s *SyslogSink) Send(ctx context.Context, payload []byte, rec *core.Record) error {
	if err := ctx.Err(); err != nil {
		return transportErr(s.kind, err)
	}
	w, err := s.writer()
	if err != nil {
		return transportErr(s.kind, err)
	}

	msg := string(payload)
	switch rec.Level {
	case core.DebugLevel:
		err = w.Debug(msg)
	case core.InfoLevel:
		err = w.Info(msg)
	case core.WarningLevel:
		err = w.Warning(msg)
	case core.ErrorLevel:
		err = w.Err(msg)
	case core.CriticalLevel:
		err = w.Crit(msg)
	default:
		err = w.Info(msg)
	}
	return transportErr(s.kind, err)
}

func (s *SyslogSink) writer() (*srslog.Writer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w != nil {
		return s.w, nil
	}
	var (
		w   *srslog.Writer
		err error
	)
	if s.tlsCfg != nil {
		w, err = srslog.DialWithTLSConfig(s.network, s.addr, srslog.LOG_INFO|srslog.LOG_USER, s.tag, s.tlsCfg)
	} else {
		w, err = srslog.Dial(s.network, s.addr, srslog.LOG_INFO|srslog.LOG_USER, s.tag)
	}
	if err != nil {
		return nil, err
	}
	s.w = w
	return w, nil
}

// Close closes the collector connection if one was established.
func (s *SyslogSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == nil {
		return nil
	}
	err := s.w.Close()
	s.w = nil
	return err
}
