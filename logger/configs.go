package logger

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls the logger.
type Config struct {
	// Level is the minimum level written. Unknown values mean Info.
	Level string `envconfig:"LOG_LEVEL" default:"info"`

	// EnableTracing attaches trace_id and span_id to *WithContext entries.
	EnableTracing bool `envconfig:"LOG_ENABLE_TRACING"`

	// ServiceName populates the "service" field of every entry.
	ServiceName string `envconfig:"SERVICE_NAME"`

	// CallerSkip is the number of wrapper frames between the caller and this
	// package. Values <= 0 mean 1.
	CallerSkip int `envconfig:"LOG_CALLER_SKIP"`
}
