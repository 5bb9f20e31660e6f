package contextkeys

import (
	"context"

	"apt-sync-service/internal/core/port"
)

type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

// nopLogger is returned when no logger was placed into the context, so
// callers never have to nil-check.
type nopLogger struct{}

func (nopLogger) Debug(string, port.Fields)        {}
func (nopLogger) Info(string, port.Fields)         {}
func (nopLogger) Warn(string, port.Fields)         {}
func (nopLogger) Error(string, error, port.Fields) {}
func (n nopLogger) WithFields(port.Fields) port.LoggerPort {
	return n
}

// ContextWithLogger puts a request/job scoped logger into the context.
func ContextWithLogger(ctx context.Context, logger port.LoggerPort) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the scoped logger from the context.
func LoggerFromContext(ctx context.Context) port.LoggerPort {
	if logger, ok := ctx.Value(loggerKey).(port.LoggerPort); ok {
		return logger
	}
	return nopLogger{}
}
