package logger

// Level enumerates the supported log levels.
type Level int

const (
	Info Level = iota
	Debug
	Warning
	Error
)

// Config configures NewLoggerClient.
type Config struct {
	// Level is the minimum level that will be emitted.
	Level Level

	// ServiceName is attached to every log entry as the "service" field.
	ServiceName string

	// EnableTracing turns on trace/span ID extraction in the *WithContext
	// logging methods.
	EnableTracing bool
}
