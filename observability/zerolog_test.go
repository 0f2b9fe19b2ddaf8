package observability_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namelessmc/go-nameless/observability"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	for line := range bytes.SplitSeq(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		lines = append(lines, entry)
	}
	return lines
}

func TestZerologLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := observability.NewZerologLogger(zerolog.New(&buf))

	logger.Info("api call",
		observability.Field{Key: "action", Value: "info"},
		observability.Field{Key: "status", Value: 200},
	)
	logger.With(observability.Field{Key: "component", Value: "dispatcher"}).
		Error("call failed", observability.Field{Key: "error", Value: errors.New("boom")})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "api call", lines[0]["message"])
	assert.Equal(t, "info", lines[0]["action"])
	assert.InDelta(t, 200, lines[0]["status"], 0)

	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "dispatcher", lines[1]["component"])
	assert.Equal(t, "boom", lines[1]["error"])
}

func TestZerologLoggerRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := observability.NewZerologLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["message"])
}

func TestNoopMetricsRecorder(t *testing.T) {
	t.Parallel()

	recorder := observability.NoopMetricsRecorder()

	// All methods should execute without panicking
	recorder.RecordHTTPRequest("GET", "/index.php", 200, time.Second)
	recorder.RecordRateLimit("/index.php", time.Millisecond*100)
	recorder.RecordError("call:info", "transport")
}
