package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, l LogLevel) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(l)
	t.Cleanup(func() {
		SetLevel(INFO)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("DEBUG"))
	assert.Equal(t, WARN, ParseLevel(" warning "))
	assert.Equal(t, NONE, ParseLevel("off"))
	assert.Equal(t, INFO, ParseLevel("verbose"))
}

func TestLevels(t *testing.T) {
	buf := capture(t, WARN)

	Info("hidden")
	Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "key=value")
	assert.Contains(t, out, "app=tonecheck")
}

func TestNoneDisablesEverything(t *testing.T) {
	buf := capture(t, NONE)

	Error("nope")
	Slog().Error("nope either")
	assert.Empty(t, buf.String())
}

func TestWarnOnce(t *testing.T) {
	buf := capture(t, DEBUG)

	WarnOnce("model missing", "attempt", 1)
	WarnOnce("model missing", "attempt", 2)
	assert.Equal(t, 1, strings.Count(buf.String(), "model missing"))
}
