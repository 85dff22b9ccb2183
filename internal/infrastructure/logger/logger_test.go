// internal/infrastructure/logger/logger_test.go
package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, DebugLevel)

	log.Debug("feed fetched", map[string]interface{}{
		"status": 200,
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "feed fetched", entry["message"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Contains(t, entry, "timestamp")
	assert.Contains(t, entry, "file")
	assert.Contains(t, entry, "line")

	// context fields are carried by derived loggers only
	buf.Reset()
	scoped := log.WithFields(map[string]interface{}{"component": "rate_cache", "base": "EUR"})
	scoped.WithField("request_id", "abc").Info("refresh skipped", nil)

	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rate_cache", entry["component"])
	assert.Equal(t, "EUR", entry["base"])
	assert.Equal(t, "abc", entry["request_id"])

	buf.Reset()
	log.Info("plain", nil)
	entry = map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, "component")
}

func TestJSONLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, WarnLevel)

	log.Debug("hidden", nil)
	log.Info("hidden", nil)
	assert.Equal(t, "", buf.String())

	log.Warn("Warning message", nil)
	assert.Contains(t, buf.String(), "Warning message")

	buf.Reset()
	log.Error("Error message", nil)
	assert.Contains(t, buf.String(), "Error message")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLevel(" warning "))
	assert.Equal(t, ErrorLevel, ParseLevel("ERROR"))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
}

func TestDefaultLogger(t *testing.T) {
	original := GetDefaultLogger()
	defer SetDefaultLogger(original)

	var buf bytes.Buffer
	SetDefaultLogger(NewJSONLogger(&buf, DebugLevel))
	GetDefaultLogger().Info("through default", nil)
	assert.Contains(t, buf.String(), "through default")

	SetDefaultLogger(nil)
	assert.NotNil(t, GetDefaultLogger())
}
