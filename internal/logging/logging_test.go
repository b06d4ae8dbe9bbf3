package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		" error ": log.ErrorLevel,
		"":        log.WarnLevel,
		"chatty":  log.WarnLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestValidLevel(t *testing.T) {
	assert.True(t, ValidLevel("debug"))
	assert.True(t, ValidLevel("Warn"))
	assert.False(t, ValidLevel("chatty"))
	assert.False(t, ValidLevel(""))
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown", "path", "/tmp/todo.txt")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "path=/tmp/todo.txt")
	assert.Contains(t, out, "todo")
}

func TestNew_Debug(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "debug").Debug("loaded", "items", 3)
	assert.Contains(t, buf.String(), "items=3")
}
