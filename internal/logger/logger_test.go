package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("bistro-api", &buf, slog.LevelDebug)

	log.Info("payment_saved", "Payment stored", "req-1", map[string]interface{}{"email": "a@b.c"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "Payment stored", entry["msg"])
	assert.Equal(t, "bistro-api", entry["service"])
	assert.Equal(t, "payment_saved", entry["action"])
	assert.Equal(t, "req-1", entry["request_id"])
	fields, ok := entry["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a@b.c", fields["email"])
}

func TestLogger_ErrorIncludesMessage(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("bistro-api", &buf, slog.LevelInfo)

	log.Error("db_query_failed", "Query failed", "req-2", errors.New("boom"), nil)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	errGroup, ok := entry["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "boom", errGroup["msg"])
	assert.NotEmpty(t, errGroup["stack"])
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("bistro-api", &buf, slog.LevelInfo)

	log.Debug("noise", "hidden", "", nil)

	assert.Zero(t, buf.Len())
}

func TestGenerateRequestID_Unique(t *testing.T) {
	assert.NotEqual(t, GenerateRequestID(), GenerateRequestID())
}
