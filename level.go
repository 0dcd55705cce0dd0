package linelog

import (
	"errors"
	"fmt"
	"strings"
)

// Level represents the severity of a log entry. Levels are totally ordered:
// [LevelTrace] < [LevelDebug] < [LevelInfo] < [LevelWarn] < [LevelError].
type Level int8

const (
	// LevelTrace is the most verbose level.
	LevelTrace Level = iota
	// LevelDebug is for diagnostic detail.
	LevelDebug
	// LevelInfo is for routine operational events.
	LevelInfo
	// LevelWarn is for recoverable anomalies.
	LevelWarn
	// LevelError is for failures.
	LevelError
)

// ErrUnknownLogLevel indicates an unrecognized log level string.
var ErrUnknownLogLevel = errors.New("unknown log level")

// String returns the canonical upper-case form rendered in the LVL field.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}

	return fmt.Sprintf("LEVEL(%d)", int8(l))
}

// Enabled reports whether an entry at level l passes the given threshold.
func (l Level) Enabled(threshold Level) bool {
	return l >= threshold
}

// ParseLevel parses a log level string and returns the corresponding
// [Level]. Matching is case-insensitive and accepts "warning" as an alias
// for [LevelWarn].
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, level)
}

// GetAllLevelStrings returns the accepted level strings in ascending
// severity order.
func GetAllLevelStrings() []string {
	return []string{"trace", "debug", "info", "warn", "error"}
}
