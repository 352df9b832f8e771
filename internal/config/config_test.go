package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSlogLevelRecognizesNames(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseSlogLevel("debug", slog.LevelInfo))
	assert.Equal(t, slog.LevelWarn, parseSlogLevel("WARN", slog.LevelInfo))
	assert.Equal(t, slog.LevelError, parseSlogLevel("error", slog.LevelInfo))
}

func TestParseSlogLevelFallsBackToDefaultOnGarbage(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, parseSlogLevel("not-a-level", slog.LevelInfo))
}

func TestParseSlogLevelAcceptsNumericLevel(t *testing.T) {
	assert.Equal(t, slog.Level(4), parseSlogLevel("4", slog.LevelInfo))
}

func TestParseSlogLevelEmptyStringUsesDefault(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, parseSlogLevel("", slog.LevelWarn))
}
