package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	golog "github.com/fclairamb/go-log"
)

var nowFunc = time.Now

// AppLogger implements the go-log.Logger interface
type AppLogger struct {
	level   LogLevel
	logger  *log.Logger
	writer  *RotatingWriter // nil unless logging to a file
	context []interface{}
}

var _ golog.Logger = (*AppLogger)(nil)

// NewAppLogger creates a logger writing to logPath, or to stderr when logPath is empty
func NewAppLogger(logPath string, level LogLevel, maxSize int64) (*AppLogger, error) {
	if logPath == "" {
		return NewWriterLogger(os.Stderr, level), nil
	}

	rw, err := NewRotatingWriter(logPath, maxSize)
	if err != nil {
		return nil, fmt.Errorf("creating rotating writer: %w", err)
	}

	l := NewWriterLogger(rw, level)
	l.writer = rw
	return l, nil
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer, level LogLevel) *AppLogger {
	return &AppLogger{
		level:  level,
		logger: log.New(w, "", 0),
	}
}

func (l *AppLogger) shouldLog(level LogLevel) bool {
	return levelOrder[level] >= levelOrder[l.level]
}

func (l *AppLogger) log(level LogLevel, message string, keyvals ...interface{}) {
	if !l.shouldLog(level) {
		return
	}

	all := make([]interface{}, 0, len(l.context)+len(keyvals))
	all = append(all, l.context...)
	all = append(all, keyvals...)

	line := fmt.Sprintf("%s %s: %s", timestamp(), level, message)
	if parts := formatPairs(all); len(parts) > 0 {
		line += " " + strings.Join(parts, " ")
	}
	l.logger.Print(line)
}

// Debug implements go-log.Logger
func (l *AppLogger) Debug(message string, keyvals ...interface{}) {
	l.log(LogLevelDebug, message, keyvals...)
}

// Info implements go-log.Logger
func (l *AppLogger) Info(message string, keyvals ...interface{}) {
	l.log(LogLevelInfo, message, keyvals...)
}

// Warn implements go-log.Logger
func (l *AppLogger) Warn(message string, keyvals ...interface{}) {
	l.log(LogLevelWarn, message, keyvals...)
}

// Error implements go-log.Logger
func (l *AppLogger) Error(message string, keyvals ...interface{}) {
	l.log(LogLevelError, message, keyvals...)
}

// Panic implements go-log.Logger. It logs and does not panic.
func (l *AppLogger) Panic(message string, keyvals ...interface{}) {
	l.log(LogLevelPanic, message, keyvals...)
}

// With implements go-log.Logger. The returned logger shares the output.
func (l *AppLogger) With(keyvals ...interface{}) golog.Logger {
	ctx := make([]interface{}, 0, len(l.context)+len(keyvals))
	ctx = append(ctx, l.context...)
	ctx = append(ctx, keyvals...)
	return &AppLogger{
		level:   l.level,
		logger:  l.logger,
		context: ctx,
	}
}

// IsDebug returns true if the logger is at debug level
func (l *AppLogger) IsDebug() bool {
	return l.level == LogLevelDebug
}

// Close closes the log file, if any
func (l *AppLogger) Close() error {
	if l.writer != nil {
		return l.writer.Close()
	}
	return nil
}
