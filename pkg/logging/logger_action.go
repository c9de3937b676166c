package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// ActionLogger records one line per widget action
type ActionLogger interface {
	// LogAction logs a user-triggered action and its outcome
	LogAction(action string, session string, status string, details ...interface{})
	// Close releases the underlying file, if any
	Close() error
}

type actionLogger struct {
	logger *log.Logger
	closer io.Closer
}

// NewActionLogger creates an action logger appending to logPath.
// An empty path discards everything.
func NewActionLogger(logPath string) (ActionLogger, error) {
	if logPath == "" {
		return NewWriterActionLogger(io.Discard), nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("creating action log directory: %w", err)
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening action log file: %w", err)
	}

	return &actionLogger{
		logger: log.New(f, "", 0),
		closer: f,
	}, nil
}

// NewWriterActionLogger creates an action logger writing to w
func NewWriterActionLogger(w io.Writer) ActionLogger {
	return &actionLogger{logger: log.New(w, "", 0)}
}

func (l *actionLogger) LogAction(action string, session string, status string, details ...interface{}) {
	parts := []string{fmt.Sprintf("op=%s", formatValue(action))}
	if session != "" {
		parts = append(parts, fmt.Sprintf("session=%s", formatValue(session)))
	}
	parts = append(parts, fmt.Sprintf("status=%s", formatValue(status)))
	parts = append(parts, formatPairs(details)...)

	l.logger.Printf("%s %s", timestamp(), strings.Join(parts, " "))
}

func (l *actionLogger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
