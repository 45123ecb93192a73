package zerolog

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLoggerFields(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	logger := NewZerologLoggerWithWriter("bugtracker", &buf)
	logger.SetLevel("DEBUG")

	logger.Info("user registered", "userId", "abc", 42, "dropped", "error", errors.New("boom"), "dangling")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "user registered", entry["message"])
	assert.Equal(t, "bugtracker", entry["service"])
	assert.Equal(t, "abc", entry["userId"])
	assert.Equal(t, "boom", entry["error"])
	assert.NotContains(t, entry, "dangling")
}

func TestLoggerSetLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	tests := []struct {
		level    string
		logDebug bool
		logError bool
	}{
		{level: "debug", logDebug: true, logError: true},
		{level: "INFO", logDebug: false, logError: true},
		{level: "error", logDebug: false, logError: true},
		{level: "unknown", logDebug: false, logError: true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewZerologLoggerWithWriter("svc", &buf)
			logger.SetLevel(tt.level)

			logger.Debug("debug line")
			assert.Equal(t, tt.logDebug, buf.Len() > 0)

			buf.Reset()
			logger.Error("error line")
			assert.Equal(t, tt.logError, buf.Len() > 0)
		})
	}
}

func TestLoggerWithContext(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	logger := NewZerologLoggerWithWriter("svc", &buf).WithContext(map[string]interface{}{"route": "/api/bug/list"})
	logger.SetLevel("info")
	logger.Warn("slow request")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "/api/bug/list", entry["route"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	assert.NotPanics(t, func() {
		logger.Info("ignored", "k", "v")
		logger.WithContext(map[string]interface{}{"a": 1}).Error("ignored")
	})
}
