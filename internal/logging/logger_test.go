package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, slog.LevelInfo)

	log.Info("resolve failed", "error", errors.New("boom"))

	assert.Contains(t, buf.String(), "err=boom")
	assert.NotContains(t, buf.String(), "error=")
}

func TestLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, Level(false))
	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log = NewWithWriter(&buf, Level(true))
	log.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}
