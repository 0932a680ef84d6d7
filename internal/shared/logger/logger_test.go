package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, "info", "json")

	l.Debug("hidden")
	l.Info("shown", slog.Int64("user_id", 7))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, float64(7), rec["user_id"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	newWithWriter(&buf, "debug", "text").Debug("hello")

	assert.True(t, strings.Contains(buf.String(), "msg=hello"))
}
