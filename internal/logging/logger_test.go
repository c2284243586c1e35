package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Level: "debug", Format: FormatJSON}, &buf)

	l.Debug().Str("zone", "Amazonía").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "Amazonía", entry["zone"])
	assert.Equal(t, "hello", entry["message"])
}

func TestNewLogger_LevelFilter(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantOut bool
	}{
		{name: "debug shows debug", level: "debug", wantOut: true},
		{name: "info hides debug", level: "info", wantOut: false},
		{name: "invalid defaults to info", level: "loud", wantOut: false},
		{name: "empty defaults to info", level: "", wantOut: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogger(Config{Level: tt.level, Format: FormatJSON}, &buf)
			l.Debug().Msg("x")
			assert.Equal(t, tt.wantOut, buf.Len() > 0)
		})
	}
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	l := ComponentLogger(NewLogger(Config{Format: FormatJSON}, &buf), "server")
	l.Info().Msg("up")
	assert.Contains(t, buf.String(), `"component":"server"`)
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Format: FormatJSON}, &buf)
	ctx := l.WithContext(context.Background())

	FromContext(ctx).Info().Msg("from ctx")
	assert.Contains(t, buf.String(), "from ctx")

	// A bare context yields a usable logger.
	assert.NotPanics(t, func() {
		FromContext(context.Background()).Info().Msg("ignored")
	})
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))

	id := GetOrGenerateTraceID(ctx)
	assert.Len(t, id, 26)

	ctx = ContextWithTraceID(ctx, id)
	assert.Equal(t, id, GetOrGenerateTraceID(ctx))

	var buf bytes.Buffer
	l := NewLogger(Config{Format: FormatJSON}, &buf)
	l.Info().Ctx(ctx).Msg("traced")
	assert.Contains(t, buf.String(), `"trace_id":"`+id+`"`)
}

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "solarsizer.log")
	result := NewLoggerWithPath(Config{Level: "info", Output: OutputFile, File: path})
	t.Cleanup(func() { _ = result.Close() })

	require.True(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)
	assert.Equal(t, path, result.FilePath)

	result.Logger.Info().Msg("to file")
	require.NoError(t, result.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNewLoggerWithPath_Fallback(t *testing.T) {
	result := NewLoggerWithPath(Config{Output: OutputFile})
	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
	assert.NoError(t, result.Close())
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	PrintLogPathMessage(&buf, "/tmp/x.log")
	PrintFallbackWarning(&buf, "denied")
	assert.Contains(t, buf.String(), "Logging to /tmp/x.log")
	assert.Contains(t, buf.String(), "denied")
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Format: FormatConsole}, &buf)
	l.Info().Msg("pretty")
	assert.Contains(t, buf.String(), "pretty")
	assert.NotContains(t, buf.String(), `"message"`)
}
