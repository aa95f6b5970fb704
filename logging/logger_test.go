package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "INFO", LogLevelInfo.String())
	assert.Equal(t, "WARN", LogLevelWarn.String())
	assert.Equal(t, "ERROR", LogLevelError.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestNewSlogLoggerTo_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLoggerTo(&buf, LogLevelInfo, "json", false)

	logger.Info("run.complete", "run_id", "abc", "gateway_calls", 3)

	var entry map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "run.complete", entry["msg"])
	assert.Equal(t, "abc", entry["run_id"])
	assert.Equal(t, float64(3), entry["gateway_calls"])
}

func TestNewSlogLoggerTo_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLoggerTo(&buf, LogLevelInfo, "text", false)

	logger.Warn("gateway.over_budget", "calls", 65)

	out := buf.String()
	assert.Contains(t, out, "gateway.over_budget")
	assert.Contains(t, out, "calls=65")
}

func TestNewSlogLoggerTo_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLoggerTo(&buf, LogLevelError, "text", false)

	logger.Debug("debug msg")
	logger.Info("info msg")
	logger.Warn("warn msg")
	logger.Error("error msg")

	out := buf.String()
	assert.False(t, strings.Contains(out, "debug msg"))
	assert.False(t, strings.Contains(out, "info msg"))
	assert.False(t, strings.Contains(out, "warn msg"))
	assert.Contains(t, out, "error msg")
}

func TestNoOpLogger(t *testing.T) {
	var logger Logger = NoOpLogger{}

	// Must not panic; output goes nowhere.
	logger.Debug("a")
	logger.Info("b", "k", "v")
	logger.Warn("c")
	logger.Error("d")
}
