package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug).With("component", "store")
	log.Info("saved key", "key", "syllabus", "bytes", 42)

	line := strings.TrimSuffix(buf.String(), "\n")
	fields := strings.Split(line, "\t")
	require.Len(t, fields, 6)
	assert.Equal(t, "INFO", fields[1])
	assert.Equal(t, "saved key", fields[2])
	assert.Equal(t, "component=store", fields[3])
	assert.Equal(t, "key=syllabus", fields[4])
	assert.Equal(t, "bytes=42", fields[5])
}

func TestHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelWarn)
	log.Info("hidden")
	log.Debug("hidden")
	log.Warn("shown")
	log.Error("shown too")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestHandlerGroup(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo).WithGroup("timer").Info("tick", "remaining", 10)
	assert.Contains(t, buf.String(), "\ttimer.remaining=10")
}

func TestHandlerGroupAppliesToWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo).With("op", "tui").WithGroup("timer").With("phase", "focus")
	log.Info("tick")

	out := buf.String()
	assert.Contains(t, out, "\top=tui")
	assert.Contains(t, out, "\ttimer.phase=focus")
	assert.NotContains(t, out, "\tphase=")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	log, f, err := Open(dir, slog.LevelInfo)
	require.NoError(t, err)
	log.Info("hello")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\tINFO\thello")
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
