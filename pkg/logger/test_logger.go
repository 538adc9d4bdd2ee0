package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestLogger extends Logger with log capture for testing
type TestLogger struct {
	*Logger
	observed *observer.ObservedLogs
}

// NewTestLogger builds a debug-level logger whose entries can be inspected.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()
	core, observed := observer.New(zapcore.DebugLevel)
	return &TestLogger{
		Logger:   &Logger{Logger: zap.New(core).Named(loggerName)},
		observed: observed,
	}
}

// GetLogs returns captured messages in the order they were logged.
func (tl *TestLogger) GetLogs() []string {
	entries := tl.observed.All()
	logs := make([]string, 0, len(entries))
	for _, e := range entries {
		logs = append(logs, e.Message)
	}
	return logs
}

// Entries exposes the raw observed entries, including fields.
func (tl *TestLogger) Entries() []observer.LoggedEntry {
	return tl.observed.All()
}
