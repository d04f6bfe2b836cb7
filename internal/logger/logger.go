package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const maxBufferSize = 1000

var (
	instance *Logger
	mu       sync.Mutex
)

type LogEntry struct {
	Timestamp time.Time
	Level     zerolog.Level
	Message   string
}

type Logger struct {
	file   *os.File
	zl     zerolog.Logger
	mu     sync.Mutex
	buffer []LogEntry
}

// Init opens logPath for appending and routes every event there as JSON.
// Calling it again replaces the previous destination.
func Init(logPath string, level zerolog.Level) error {
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if instance != nil && instance.file != nil {
		_ = instance.file.Close()
	}
	instance = newLogger(file, file, level)
	return nil
}

// InitWriter is Init for an arbitrary writer, mostly for tests.
func InitWriter(w io.Writer, level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	instance = newLogger(nil, w, level)
}

func newLogger(file *os.File, w io.Writer, level zerolog.Level) *Logger {
	return &Logger{
		file:   file,
		zl:     zerolog.New(w).Level(level).With().Timestamp().Logger(),
		buffer: make([]LogEntry, 0, maxBufferSize),
	}
}

func EnsureInit() *Logger {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = newLogger(nil, io.Discard, zerolog.Disabled)
	}
	return instance
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if instance != nil && instance.file != nil {
		err := instance.file.Close()
		instance.file = nil
		instance.zl = zerolog.Nop()
		return err
	}
	return nil
}

// Get returns the underlying zerolog logger for callers that want
// structured fields. Events logged through it skip the ring buffer.
func Get() *zerolog.Logger {
	l := EnsureInit()
	return &l.zl
}

func (l *Logger) record(level zerolog.Level, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.buffer) >= maxBufferSize {
		l.buffer = l.buffer[1:]
	}
	l.buffer = append(l.buffer, LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
	})
}

func GetLogs() []LogEntry {
	l := EnsureInit()
	l.mu.Lock()
	defer l.mu.Unlock()

	logs := make([]LogEntry, len(l.buffer))
	copy(logs, l.buffer)
	return logs
}

func LogFileOpen(path string) {
	l := EnsureInit()
	l.record(zerolog.DebugLevel, fmt.Sprintf("[FILE_OPEN] %s", path))
	l.zl.Debug().Str("op", "open").Str("path", path).Msg("file access")
}

func LogFileWrite(path string) {
	l := EnsureInit()
	l.record(zerolog.DebugLevel, fmt.Sprintf("[FILE_WRITE] %s", path))
	l.zl.Debug().Str("op", "write").Str("path", path).Msg("file access")
}

func LogError(operation, path string, err error) {
	l := EnsureInit()
	l.record(zerolog.ErrorLevel, fmt.Sprintf("[ERROR] %s: %s - %v", operation, path, err))
	l.zl.Error().Err(err).Str("op", operation).Str("path", path).Msg(operation + " failed")
}

func Log(message string, args ...interface{}) {
	l := EnsureInit()
	formatted := fmt.Sprintf(message, args...)
	l.record(zerolog.InfoLevel, "[INFO] "+formatted)
	l.zl.Info().Msg(formatted)
}
