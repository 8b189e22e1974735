package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/naekun/naebot/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel("WARN"))
	assert.Equal(t, ERROR, ParseLevel("Error"))
	assert.Equal(t, INFO, ParseLevel(""))
	assert.Equal(t, INFO, ParseLevel("verbose"))
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, WARN)

	logger.Debug("hidden %d", 1)
	logger.Info("hidden %d", 2)
	assert.Empty(t, buf.String())

	logger.Warn("shown %d", 3)
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "shown 3")
	assert.Contains(t, buf.String(), "logger_test.go")
}

func TestLogErrorExpandsBotError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, DEBUG)

	logger.LogError(types.WrapError(types.ErrStorageError, "failed to save stats", errors.New("disk full")))

	out := buf.String()
	assert.Contains(t, out, "Code: STORAGE_ERROR")
	assert.Contains(t, out, "Message: failed to save stats")
	assert.Contains(t, out, "Cause: disk full")

	buf.Reset()
	logger.LogError(errors.New("boom"))
	assert.Contains(t, buf.String(), "Unexpected error: boom")
}
