// Package logging sets up structured slog output for phonebench.
//
// With --debug, JSON logs are written to ~/.phonebench/logs/phonebench.log
// through a size-rotating writer. Without it, only warnings reach stderr so
// stdout carries nothing but the benchmark report.
package logging
