package logger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Constants
const (
	LogFilePermissions = 0600
	InfoLogLevel       = "info"
	DefaultLogPath     = "/tmp/azops.log"
	loggerName         = "azops"
)

var (
	globalLogger *zap.Logger
	loggerMutex  sync.RWMutex
)

// Logger wraps a zap logger with the printf-style helpers used across azops.
type Logger struct {
	*zap.Logger
}

func (l *Logger) log(level zapcore.Level, msg string) {
	if l.Logger == nil {
		return
	}
	if ce := l.Logger.Check(level, msg); ce != nil {
		ce.Write()
	}
}

func (l *Logger) Debug(msg string) { l.log(zapcore.DebugLevel, msg) }
func (l *Logger) Info(msg string)  { l.log(zapcore.InfoLevel, msg) }
func (l *Logger) Warn(msg string)  { l.log(zapcore.WarnLevel, msg) }
func (l *Logger) Error(msg string) { l.log(zapcore.ErrorLevel, msg) }

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Debug(fmt.Sprintf(format, args...))
}
func (l *Logger) Infof(format string, args ...interface{}) { l.Info(fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...interface{}) { l.Warn(fmt.Sprintf(format, args...)) }

// Field logging methods
func (l *Logger) DebugWithFields(msg string, fields ...zap.Field) {
	if l.Logger != nil {
		l.Logger.Debug(msg, fields...)
	}
}

func (l *Logger) InfoWithFields(msg string, fields ...zap.Field) {
	if l.Logger != nil {
		l.Logger.Info(msg, fields...)
	}
}

func (l *Logger) WarnWithFields(msg string, fields ...zap.Field) {
	if l.Logger != nil {
		l.Logger.Warn(msg, fields...)
	}
}

func (l *Logger) ErrorWithFields(msg string, fields ...zap.Field) {
	if l.Logger != nil {
		l.Logger.Error(msg, fields...)
	}
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	if l.Logger == nil {
		return l
	}
	return &Logger{Logger: l.Logger.With(fields...)}
}

// Sync flushes buffered entries. Errors from syncing stdout are ignored.
func (l *Logger) Sync() error {
	if l.Logger == nil {
		return nil
	}
	_ = l.Logger.Sync()
	return nil
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(fmt.Sprintf("[%s]", t.Format("2006-01-02 15:04:05")))
}

func getZapLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Get returns the global logger. Until Initialize runs it discards everything.
func Get() *Logger {
	loggerMutex.RLock()
	defer loggerMutex.RUnlock()

	if globalLogger == nil {
		return NewNopLogger()
	}
	return &Logger{Logger: globalLogger}
}

func SetGlobalLogger(l *Logger) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	if l == nil {
		globalLogger = nil
		return
	}
	globalLogger = l.Logger
}

func NewNopLogger() *Logger {
	return &Logger{Logger: zap.NewNop()}
}
