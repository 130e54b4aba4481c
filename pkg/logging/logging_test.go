package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/chris/property-escrow/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, config.LoggingConfig{Level: "warn", Format: "json"})

		logger.Info("dropped")
		logger.Warn("kept", "transaction_id", "tx1")

		out := buf.String()
		assert.NotContains(t, out, "dropped")
		assert.Equal(t, "kept", gjson.Get(out, "msg").String())
		assert.Equal(t, "tx1", gjson.Get(out, "transaction_id").String())
	})

	t.Run("Text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, config.LoggingConfig{Level: "debug", Format: "text"})
		logger.Debug("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
