package logger

import "github.com/quarryhill/logway/core"

// Level re-exports the severity type for convenience.
type Level = core.Level

const (
	DebugLevel    = core.DebugLevel
	InfoLevel     = core.InfoLevel
	WarningLevel  = core.WarningLevel
	ErrorLevel    = core.ErrorLevel
	CriticalLevel = core.CriticalLevel
)

// ParseLevel converts a level name to a Level, defaulting to INFO.
func ParseLevel(s string) Level { return core.ParseLevel(s) }
