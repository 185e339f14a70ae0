// Package formatter defines how log records are rendered into the
// payload delivered to a sink.
//
// Formatters are total functions: a record that cannot be rendered
// cleanly degrades to a string conversion instead of failing, because a
// formatting problem must never be the reason an unrelated call fails.
//
// Three renderings are provided:
//
//   - TextFormatter produces a single plain-text line.
//   - ColorFormatter wraps TextFormatter output in an ANSI color chosen
//     by severity (DEBUG magenta, INFO green, WARNING yellow,
//     ERROR/CRITICAL red). Whether color is applied at all is decided
//     once, at sink construction time, via IsTerminal.
//   - HTMLFormatter renders an HTML table for email destinations,
//     including the stack trace and an attachment marker when present.
//
// Rendering uses a pooled bytes.Buffer; buffers above 64 KiB are not
// returned to the pool so a single huge record cannot pin memory.
package formatter
