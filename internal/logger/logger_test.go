package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/healthcheck/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.Log{Level: "warn", Format: "console"}, &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown", zap.String("bank", "xero"))
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, `"bank": "xero"`)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.Log{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	log.Debug("scored", zap.Int("percentage", 63))
	require.NoError(t, log.Sync())

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "scored", rec["msg"])
	assert.EqualValues(t, 63, rec["percentage"])
}

func TestNewFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "healthcheck.log")
	var buf bytes.Buffer
	log, err := New(config.Log{Level: "info", Format: "console", File: path, MaxSizeMB: 1}, &buf)
	require.NoError(t, err)

	log.Info("to both")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"msg":"to both"`), "file sink holds JSON: %s", data)
	assert.Contains(t, buf.String(), "to both")
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(config.Log{Level: "loud"}, nil)
	assert.Error(t, err)
}
