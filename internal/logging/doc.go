// Package logging configures log/slog for tocgen.
//
// By default only warnings and errors reach stderr as text, so a plain run
// prints nothing. With --debug, structured JSON logs are also written to
// ~/.tocgen/logs/tocgen.log, rotated by size when a run starts.
package logging
