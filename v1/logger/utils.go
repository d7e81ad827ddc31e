package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// convertToZapFields flattens an error and any number of field maps into a
// slice of zap.Field, skipping nil/empty inputs.
func convertToZapFields(err error, fields ...map[string]interface{}) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields)+1)
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}
	for _, m := range fields {
		for k, v := range m {
			zapFields = append(zapFields, zap.Any(k, v))
		}
	}
	return zapFields
}

// traceFields extracts the active span's trace and span IDs from ctx, when
// tracing is enabled and a span is present. Returns nil otherwise.
func (l *Logger) traceFields(ctx context.Context) []zap.Field {
	if !l.tracingEnabled || ctx == nil {
		return nil
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	}
}

// Info logs an informational message with optional error and fields.
func (l *Logger) Info(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Info(msg, convertToZapFields(err, fields...)...)
}

// Debug logs a debug message with optional error and fields.
func (l *Logger) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Debug(msg, convertToZapFields(err, fields...)...)
}

// Warn logs a warning message with optional error and fields.
func (l *Logger) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Warn(msg, convertToZapFields(err, fields...)...)
}

// Error logs an error message with optional error and fields.
func (l *Logger) Error(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Error(msg, convertToZapFields(err, fields...)...)
}

// Fatal logs a fatal message with optional error and fields, then exits.
func (l *Logger) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Fatal(msg, convertToZapFields(err, fields...)...)
}

// InfoWithContext logs an informational message, enriched with trace/span
// IDs extracted from ctx when tracing is enabled.
func (l *Logger) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Info(msg, append(convertToZapFields(err, fields...), l.traceFields(ctx)...)...)
}

// DebugWithContext logs a debug message with trace context.
func (l *Logger) DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Debug(msg, append(convertToZapFields(err, fields...), l.traceFields(ctx)...)...)
}

// WarnWithContext logs a warning message with trace context.
func (l *Logger) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Warn(msg, append(convertToZapFields(err, fields...), l.traceFields(ctx)...)...)
}

// ErrorWithContext logs an error message with trace context.
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Error(msg, append(convertToZapFields(err, fields...), l.traceFields(ctx)...)...)
}
