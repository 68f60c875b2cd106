package log

import (
	"context"
	"log/slog"
	"net/http"
)

// ContextKey type for context keys
type ContextKey string

const (
	// LoggerContextKey is the context key for the logger
	LoggerContextKey ContextKey = "logger"
)

// Middleware creates HTTP middleware that adds a logger to the request context
func Middleware(logger *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := NewContext(r.Context(), logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewContext returns a copy of ctx carrying logger
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, LoggerContextKey, logger)
}

// FromContext extracts a logger from the request context
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// StructuredLogger provides structured logging methods for expense events
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogExpenseChanged logs a successful create, update or delete
func (sl *StructuredLogger) LogExpenseChanged(ctx context.Context, op string, id, amountCents int64, category string) {
	fields := NewFields().
		WithExpense(id, amountCents, category).
		WithOperation(op).
		ToSlice()
	sl.logger.WithComponent(ComponentExpense).InfoContext(ctx, "Expense "+op+" succeeded", fields...)
}

// LogRejectedInput logs user input that was ignored
func (sl *StructuredLogger) LogRejectedInput(ctx context.Context, op, field, input string, err error) {
	fields := NewFields().
		WithOperation(op).
		WithError(err).
		ToSlice()
	fields = append(fields, FieldInput, input, "field", field)
	sl.logger.WithComponent(ComponentExpense).WarnContext(ctx, "Input rejected", fields...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation)
	sl.logger.WithComponent(component).ErrorContext(ctx, msg, allFields.ToSlice()...)
}
