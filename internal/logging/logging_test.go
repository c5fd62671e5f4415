package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "INFO", expected: slog.LevelInfo},
		{input: "", expected: slog.LevelWarn},
		{input: "warning", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "loud", expected: slog.LevelWarn, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestInit_Stderr(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Level: "warn", Stderr: &buf}))
	t.Cleanup(func() { _ = Close() })

	Info("hidden")
	Logger().Error("failed to open build log", "path", "/x")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "path=/x")
}

func TestInit_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "loggy.log")
	require.NoError(t, Init(Options{Level: "debug", File: path}))

	Debug("scan finished", "matched", 2)
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &record))
	assert.Equal(t, "scan finished", record["msg"])
	assert.Equal(t, float64(2), record["matched"])
}

func TestInit_BadLevel(t *testing.T) {
	assert.Error(t, Init(Options{Level: "verbose"}))
}
