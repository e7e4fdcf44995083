package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithLevel(zerolog.DebugLevel), WithWriter(&buf))

	logger.Info(context.Background(), "query processed", map[string]interface{}{
		"intent":     "inventory_query",
		"confidence": 0.8,
	})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "query processed", line["message"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "inventory_query", line["intent"])
	assert.Equal(t, 0.8, line["confidence"])
	assert.Contains(t, line, "time")
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithLevel(zerolog.WarnLevel), WithWriter(&buf))

	logger.Debug(context.Background(), "dropped", nil)
	logger.Info(context.Background(), "dropped too", nil)
	assert.Zero(t, buf.Len())

	logger.Warn(context.Background(), "kept", nil)
	assert.NotZero(t, buf.Len())
}

func TestWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithLevel(zerolog.DebugLevel), WithWriter(&buf))

	child := logger.With(map[string]interface{}{"strategy": "reflex"})
	child.Info(context.Background(), "hello", nil)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "reflex", line["strategy"])
}

func TestNoopDiscards(t *testing.T) {
	logger := Noop()
	logger.Error(context.Background(), "nothing happens", map[string]interface{}{"k": "v"})
}
