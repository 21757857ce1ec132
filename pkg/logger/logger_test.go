package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "entry=%s", buf.String())
	return entry
}

func TestLoggerErrorIncludesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("debug"), Output: buf})

	ctx := log.WithRequestID(context.Background(), "req-123")
	ctx = log.WithUserID(ctx, 42)
	log.Error(ctx, "boom", errors.New("boom"))

	entry := decodeLine(t, buf)
	assert.Equal(t, "req-123", entry["request_id"])
	assert.EqualValues(t, 42, entry["user_id"])
	assert.Equal(t, "test", entry["service"])
	assert.Equal(t, "boom", entry["error"])
	assert.Contains(t, entry, "stack")
}

func TestLoggerWarnStackToggle(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf, WarnStack: true})
	log.Warn(context.Background(), "warny")
	assert.Contains(t, decodeLine(t, buf), "stack")

	buf.Reset()
	quiet := New(Options{ServiceName: "test", Output: buf})
	quiet.Warn(context.Background(), "warny")
	assert.NotContains(t, decodeLine(t, buf), "stack")
}

func TestLoggerRespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: zerolog.WarnLevel, Output: buf})
	log.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())
}

func TestParseLevelDefaults(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("invalid"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
}

func TestLoggerFieldsStayScopedToContext(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf})

	ctx := log.WithFields(context.Background(), map[string]any{"order_id": 9})
	log.Info(ctx, "scoped")
	assert.EqualValues(t, 9, decodeLine(t, buf)["order_id"])

	buf.Reset()
	log.Info(context.Background(), "plain")
	entry := decodeLine(t, buf)
	assert.NotContains(t, entry, "order_id")
	assert.NotContains(t, entry, "stack")
}
