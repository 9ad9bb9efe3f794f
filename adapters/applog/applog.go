// Package applog wraps zerolog into the pair of optional sinks the core
// accepts: info and error. Both are plain zerolog.Logger values (the zero
// value is a valid no-op logger), so callers can pass either sink as
// "absent" simply by leaving it unset.
package applog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Sinks bundles the two severities deadmock's core logs at. No-match,
// missing-body-file, and upstream-call failures are expected, recovered
// conditions and are logged at Info; codec, config, and bind failures are
// logged at Error.
type Sinks struct {
	Info  zerolog.Logger
	Error zerolog.Logger
}

// New builds human-readable console sinks writing to stdout (info) and
// stderr (error), threaded through every handler as a plain zerolog.Logger
// field.
func New(verbose bool) Sinks {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	info := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).
		Level(level).With().Timestamp().Logger()
	errLog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(level).With().Timestamp().Logger()

	return Sinks{Info: info, Error: errLog}
}

// Discard returns sinks that drop every log line, for tests that don't
// want console noise.
func Discard() Sinks {
	return Sinks{
		Info:  zerolog.New(io.Discard),
		Error: zerolog.New(io.Discard),
	}
}
