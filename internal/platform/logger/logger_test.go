package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Error, ParseLevel(" error "))
	assert.Equal(t, Info, ParseLevel("verbose"))
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("logfmt"))
}

func TestJSONLogger_WritesFieldsAndRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newWithSink(Options{Level: Info, Format: FormatJSON, App: "pet-health"}, zapcore.AddSync(&buf))

	l.Debug("hidden", nil)
	l.With(map[string]any{"pet_id": "pet-1"}).Warn("status mismatch", map[string]any{
		"score": 42,
		"err":   errors.New("boom"),
		"":      "ignored",
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "status mismatch", entry["msg"])
	assert.Equal(t, "pet-health", entry["app"])
	assert.Equal(t, "pet-1", entry["pet_id"])
	assert.EqualValues(t, 42, entry["score"])
	assert.Equal(t, "boom", entry["err"])
}

func TestNop(t *testing.T) {
	l := NewNop()
	l.Info("nothing", map[string]any{"a": 1})
	assert.NotNil(t, l.With(nil))
	Sync(l)
}
