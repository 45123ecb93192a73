package zerolog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/rs/zerolog"
)

// Logger implements interfaces.Logger using zerolog.
type Logger struct {
	zlog zerolog.Logger
}

// NewZerologLogger initializes zerolog with standard settings, writing to stdout.
func NewZerologLogger(serviceName string) interfaces.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i any) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	return NewZerologLoggerWithWriter(serviceName, output)
}

// NewZerologLoggerWithWriter builds a logger on an arbitrary writer (JSON output
// unless w is a zerolog.ConsoleWriter).
func NewZerologLoggerWithWriter(serviceName string, w io.Writer) interfaces.Logger {
	z := zerolog.New(w).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
	return &Logger{zlog: z}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() interfaces.Logger {
	return &Logger{zlog: zerolog.Nop()}
}

func (l *Logger) Info(msg string, keyvals ...interface{}) {
	withFields(l.zlog.Info(), keyvals).Msg(msg)
}

func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	withFields(l.zlog.Warn(), keyvals).Msg(msg)
}

func (l *Logger) Error(msg string, keyvals ...interface{}) {
	withFields(l.zlog.Error(), keyvals).Msg(msg)
}

func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	withFields(l.zlog.Debug(), keyvals).Msg(msg)
}

// withFields attaches key/value pairs; non-string keys and a trailing odd value are dropped.
func withFields(event *zerolog.Event, keyvals []interface{}) *zerolog.Event {
	for i := 0; i < len(keyvals)-1; i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		if err, isErr := keyvals[i+1].(error); isErr {
			event = event.AnErr(key, err)
			continue
		}
		event = event.Interface(key, keyvals[i+1])
	}
	return event
}

// SetLevel sets the global log level for zerolog. Level names are case-insensitive.
func (l *Logger) SetLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// WithContext creates a new logger with additional context.
func (l *Logger) WithContext(ctx map[string]interface{}) interfaces.Logger {
	newLogger := l.zlog.With()
	for key, value := range ctx {
		newLogger = newLogger.Interface(key, value)
	}
	return &Logger{zlog: newLogger.Logger()}
}
