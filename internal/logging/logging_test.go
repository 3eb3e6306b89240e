package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedactsSecretKeys(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core))

	l.Info("configured", "api_key", "sk-123", "base_url", "http://x")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "[REDACTED]", fields["api_key"])
	assert.Equal(t, "http://x", fields["base_url"])
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With("component", "remote")

	l.Warn("slow", "latency_ms", 1200)

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "remote", fields["component"])
	assert.EqualValues(t, 1200, fields["latency_ms"])
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trivia.log")
	l, err := New(Options{Path: path})
	require.NoError(t, err)

	l.Info("hello", "topic", "history")
	l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"topic":"history"`))
}

func TestOddKeyValuesKept(t *testing.T) {
	out := redact([]any{"a", 1, "dangling"})
	assert.Equal(t, []any{"a", 1, "dangling"}, out)
}
