package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// LogLevel represents the severity of a log message
type LogLevel string

const (
	// LogLevelDebug is for debug messages
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is for informational messages
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn is for warning messages
	LogLevelWarn LogLevel = "warn"
	// LogLevelError is for error messages
	LogLevelError LogLevel = "error"
	// LogLevelPanic is for panic messages
	LogLevelPanic LogLevel = "panic"
)

// DefaultMaxSize is the app log rotation size when none is configured
const DefaultMaxSize int64 = 10 * 1024 * 1024

var levelOrder = map[LogLevel]int{
	LogLevelDebug: 0,
	LogLevelInfo:  1,
	LogLevelWarn:  2,
	LogLevelError: 3,
	LogLevelPanic: 4,
}

// ErrUnknownLevel is returned by ParseLevel for unrecognized names
var ErrUnknownLevel = errors.New("unknown log level")

// ParseLevel converts a config string into a LogLevel. Empty means info.
func ParseLevel(s string) (LogLevel, error) {
	level := LogLevel(strings.ToLower(strings.TrimSpace(s)))
	if level == "" {
		return LogLevelInfo, nil
	}
	if _, ok := levelOrder[level]; !ok {
		return LogLevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return level, nil
}

// Config holds logging configuration
type Config struct {
	ActionLogPath string   // optional, actions are discarded when empty
	AppLogPath    string   // optional, stderr when empty
	Level         LogLevel // defaults to info
	MaxSize       int64    // app log rotation size in bytes
}

var (
	// App is the global application logger
	App *AppLogger
	// Action is the global widget action logger
	Action ActionLogger
)

func init() {
	// Discard everything until Initialize is called
	App = NewWriterLogger(io.Discard, LogLevelInfo)
	Action = NewWriterActionLogger(io.Discard)
}

// Initialize replaces the global loggers
func Initialize(config *Config) error {
	level := config.Level
	if level == "" {
		level = LogLevelInfo
	}
	maxSize := config.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	newAction, err := NewActionLogger(config.ActionLogPath)
	if err != nil {
		return fmt.Errorf("failed to initialize action logger: %w", err)
	}

	newApp, err := NewAppLogger(config.AppLogPath, level, maxSize)
	if err != nil {
		newAction.Close()
		return fmt.Errorf("failed to initialize app logger: %w", err)
	}

	Action = newAction
	App = newApp
	return nil
}

// Shutdown closes any files held by the global loggers
func Shutdown() error {
	return errors.Join(App.Close(), Action.Close())
}

// formatValue formats a value for logfmt, quoting if necessary
func formatValue(v interface{}) string {
	s := fmt.Sprintf("%v", v)
	if strings.ContainsAny(s, " =\"") {
		s = strings.ReplaceAll(s, "\"", "\\\"")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}

// formatPairs renders keyvals as logfmt, dropping a trailing key without value
func formatPairs(keyvals []interface{}) []string {
	var parts []string
	for i := 0; i+1 < len(keyvals); i += 2 {
		parts = append(parts, fmt.Sprintf("%s=%s", toString(keyvals[i]), formatValue(toString(keyvals[i+1]))))
	}
	return parts
}

func toString(v interface{}) string {
	if v == nil {
		return ""
	}
	str := fmt.Sprintf("%v", v)
	str = strings.ReplaceAll(str, "\n", " ")
	str = strings.ReplaceAll(str, "\r", " ")
	str = strings.ReplaceAll(str, "\t", " ")
	return strings.Join(strings.Fields(str), " ")
}

func timestamp() string {
	return nowFunc().UTC().Format("2006-01-02 15:04:05 -0700")
}
