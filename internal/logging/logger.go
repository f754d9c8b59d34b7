package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents log severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger wraps a zap logger writing to a daily file.
type Logger struct {
	mu       sync.Mutex
	zl       *zap.SugaredLogger
	file     *os.File
	level    zap.AtomicLevel
	enabled  bool
	filePath string
}

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

// Initialize sets up the default logger
func Initialize(logDir string, level Level) error {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, fmt.Sprintf("cellgrid-%s.log", time.Now().Format("2006-01-02")))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	atom := zap.NewAtomicLevelAt(level.zapLevel())
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(file), atom)

	l := &Logger{
		zl:       zap.New(core).Sugar(),
		file:     file,
		level:    atom,
		enabled:  true,
		filePath: logPath,
	}

	defaultMu.Lock()
	old := defaultLogger
	defaultLogger = l
	defaultMu.Unlock()
	if old != nil {
		_ = old.close()
	}
	return nil
}

func current() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetEnabled enables or disables logging
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetLevel changes the minimum level of the default logger.
func SetLevel(level Level) {
	if l := current(); l != nil {
		l.level.SetLevel(level.zapLevel())
	}
}

func log(level Level, format string, args ...interface{}) {
	l := current()
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled {
		return
	}
	switch level {
	case LevelDebug:
		l.zl.Debugf(format, args...)
	case LevelInfo:
		l.zl.Infof(format, args...)
	case LevelWarn:
		l.zl.Warnf(format, args...)
	case LevelError:
		l.zl.Errorf(format, args...)
	}
}

// Debug logs a debug message
func Debug(format string, args ...interface{}) {
	log(LevelDebug, format, args...)
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	log(LevelInfo, format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	log(LevelWarn, format, args...)
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	log(LevelError, format, args...)
}

// WithError logs an error with context
func WithError(err error, context string) {
	if err != nil {
		log(LevelError, "%s: %v", context, err)
	}
}

func (l *Logger) close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.zl.Sync()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.enabled = false
	return err
}

// Close flushes and closes the log file
func Close() error {
	if l := current(); l != nil {
		return l.close()
	}
	return nil
}

// GetLogPath returns the current log file path
func GetLogPath() string {
	if l := current(); l != nil {
		return l.filePath
	}
	return ""
}
