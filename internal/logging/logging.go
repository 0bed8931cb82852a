// ABOUTME: Leveled logger construction for the CLI and services.
// ABOUTME: Wraps charmbracelet/log with the fitforge prefix and a config-driven level.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the named level.
// Unknown levels fall back to warn.
func New(level string, w io.Writer) *log.Logger {
	logger := log.New(w)
	logger.SetPrefix("fitforge")
	logger.SetReportTimestamp(true)
	logger.SetLevel(ParseLevel(level))
	return logger
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *log.Logger {
	return New("error", io.Discard)
}

// ParseLevel maps a config string to a log level.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}
