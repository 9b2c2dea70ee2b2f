package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrettyHandlerPlain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}, false))

	log.With("run_id", "abc").WithGroup("file").Info("sidecar written", "size", 42, "error", errors.New("boom"))
	log.Debug("hidden")

	line := buf.String()
	require.Equal(t, 1, strings.Count(line, "\n"))
	require.Contains(t, line, "INFO  sidecar written")
	require.Contains(t, line, " run_id=abc")
	require.Contains(t, line, " file.size=42")
	require.Contains(t, line, ` file.error="boom"`)
	require.NotContains(t, line, "\033[")
}

func TestPrettyHandlerColor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, nil, true))
	log.Error("processing failed")

	require.Contains(t, buf.String(), red+"ERROR"+reset)
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, slog.LevelWarn, "json").Warn("processing failed", "path", "a.jpg")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "processing failed", record["msg"])
	require.Equal(t, "a.jpg", record["path"])
}

func TestNewPrettyWithoutTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, slog.LevelDebug, "pretty").Debug("file attributes read", "size", 953458)

	require.Contains(t, buf.String(), "DEBUG file attributes read size=953458")
	require.NotContains(t, buf.String(), "\033[")
}
