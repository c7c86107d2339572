package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogLevel represents different types of log entries
type LogLevel string

const (
	LogLevelDebug   LogLevel = "DEBUG"
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARN"
	LogLevelError   LogLevel = "ERROR"
)

// Logger is the logging interface the configuration subsystem depends on.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// WriterLogger writes leveled, timestamped log entries to an io.Writer.
type WriterLogger struct {
	component string
	logger    *log.Logger
	mu        sync.Mutex
}

// NewWriterLogger creates a logger for the given component writing to w
func NewWriterLogger(component string, w io.Writer) *WriterLogger {
	return &WriterLogger{
		component: component,
		logger:    log.New(w, "", 0),
	}
}

// NewConsoleLogger creates a logger writing to stderr
func NewConsoleLogger(component string) *WriterLogger {
	return NewWriterLogger(component, os.Stderr)
}

// Log writes a formatted log entry with the specified level
func (l *WriterLogger) Log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] [%s] [%s] %s", timestamp, level, l.component, message)
}

// Debug logs a debug message
func (l *WriterLogger) Debug(format string, args ...interface{}) {
	l.Log(LogLevelDebug, format, args...)
}

// Info logs an info message
func (l *WriterLogger) Info(format string, args ...interface{}) {
	l.Log(LogLevelInfo, format, args...)
}

// Warn logs a warning message
func (l *WriterLogger) Warn(format string, args ...interface{}) {
	l.Log(LogLevelWarning, format, args...)
}

// Error logs an error message
func (l *WriterLogger) Error(format string, args ...interface{}) {
	l.Log(LogLevelError, format, args...)
}

// FileLogger is a WriterLogger backed by a dated log file under a log
// directory, one file per component per day.
type FileLogger struct {
	*WriterLogger
	logFile *os.File
	logPath string
}

// NewFileLogger creates a file logger for the specified component
func NewFileLogger(component, logDir string) (*FileLogger, error) {
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s_%s.log", component, timestamp)
	logPath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := &FileLogger{
		WriterLogger: NewWriterLogger(component, file),
		logFile:      file,
		logPath:      logPath,
	}
	l.Info("session started")
	return l, nil
}

// Close closes the log file
func (l *FileLogger) Close() error {
	if l.logFile != nil {
		l.Info("session ended")
		return l.logFile.Close()
	}
	return nil
}

// GetLogPath returns the current log file path
func (l *FileLogger) GetLogPath() string {
	return l.logPath
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() Logger {
	return NewWriterLogger("nop", io.Discard)
}
