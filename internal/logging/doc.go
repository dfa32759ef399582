// Package logging builds the slog logger used by every recast component.
//
// Two output formats are supported: a console handler that renders
// "ts LEVEL component: msg key=value" lines for interactive use, and a JSON
// handler for log files and machine consumption. Output is fanned out to
// stdout and, when a log directory is configured, an append-only log file.
//
// Attr aliases (String, Int, Error, ...) keep call sites terse and make the
// structured-field vocabulary greppable from one package.
package logging
