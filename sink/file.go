package sink

import (
	"context"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/quarryhill/logway/core"
)

// FileConfig holds configuration for the rotating-file sink.
type FileConfig struct {
	// Path is the log file location (required)
	Path string
	// MaxSizeMB is the size in megabytes before rotation (default: 100)
	MaxSizeMB int
	// MaxBackups is the number of rotated files to retain (0 = keep all)
	MaxBackups int
	// MaxAgeDays is the retention of rotated files in days (0 = keep all)
	MaxAgeDays int
	// Compress gzips rotated files
	Compress bool
}

// FileSink appends payloads to a file with size-based rotation and
// backup retention handled by lumberjack.
type FileSink struct {
	out *lumberjack.Logger
}

// NewFileSink creates a rotating-file sink.
func NewFileSink(cfg FileConfig) (*FileSink, error) {
	if cfg.Path == "" {
		return nil, &core.ConfigError{Component: "file", Reason: "path is required"}
	}
	return &FileSink{
		out: &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		},
	}, nil
}

// Kind returns KindFile.
func (s *FileSink) Kind() Kind { return KindFile }

// Send appends the payload to the file, rotating first if needed.
// lumberjack serializes concurrent writes internally.
func (s *FileSink) Send(_ context.Context, payload []byte, _ *core.Record) error {
	_, err := s.out.Write(payload)
	return transportErr(KindFile, err)
}

// Close closes the current log file.
func (s *FileSink) Close() error { return s.out.Close() }
