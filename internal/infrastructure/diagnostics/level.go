// Package diagnostics provides the slog handlers that receive builder
// diagnostics: a leveled line sink for terminals and files, and an
// in-memory recorder.
package diagnostics

import (
	"fmt"
	"log/slog"
	"strings"
)

// Threshold values accepted in numeric form. A threshold includes every
// level at or below it.
const (
	ThresholdOff   = 0
	ThresholdError = 1
	ThresholdWarn  = 2
	ThresholdInfo  = 3
	ThresholdDebug = 4
)

// LevelOff is above every level a logger emits; a handler at LevelOff
// writes nothing.
const LevelOff = slog.LevelError + 4

// ParseLevel parses a threshold given by name (off, error, warn, warning,
// info, debug) or number (0 off, 1 error, 2 warn, 3 info, 4 debug).
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none", "0":
		return LevelOff, nil
	case "error", "1":
		return slog.LevelError, nil
	case "warn", "warning", "2":
		return slog.LevelWarn, nil
	case "info", "3", "":
		return slog.LevelInfo, nil
	case "debug", "4":
		return slog.LevelDebug, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %q", s)
	}
}

// LevelLabel returns the label written in front of a line.
func LevelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARNING"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
