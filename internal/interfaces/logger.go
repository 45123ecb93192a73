package interfaces

// Logger is the structured logger used across the service. keyvals are
// alternating string keys and values; an error value is logged as an error field.
type Logger interface {
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
	Debug(msg string, keyvals ...interface{})
	// SetLevel accepts debug, info, warn, error, fatal or panic.
	SetLevel(level string)
	// WithContext returns a child logger that adds ctx to every entry.
	WithContext(ctx map[string]interface{}) Logger
}
