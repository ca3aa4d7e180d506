// Package logging constructs slog loggers for the Convertly CLI.
//
// It offers a console handler with aligned key=value fields and a JSON
// handler for machine consumption, both honouring the configured level.
// Log output can fan out to stdout/stderr and a file under the configured
// log directory.
package logging
