package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn, true)

	logger.Debug("hidden", "locale", "en")
	logger.Warn("failed to load countries list", "locale", "xx")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "failed to load countries list")
	assert.Contains(t, out, "locale=xx")
	assert.NotContains(t, out, "\x1b[", "no ANSI escapes when color is off")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
