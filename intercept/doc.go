// Package intercept decides, for each hierarchical logger name, which
// setup's sinks receive its output.
//
// Rules map a dot-delimited module prefix to a target setup or mark the
// prefix ignored. Resolution picks the longest matching prefix, with a
// deny rule beating an allow rule of equal length; prefixes match whole
// dot segments only, so "myapp" matches "myapp.views" but never
// "myapplication". Rules are consulted per emission — a cheap slice
// scan, not a per-logger cache — so reconfiguration takes effect
// immediately for every caller.
//
// The package also provides SlogHandler, a log/slog bridge that routes
// records from slog-based code (including libraries the application
// never explicitly configured) into the active setup, with the slog
// group chain serving as the hierarchical logger name.
package intercept
