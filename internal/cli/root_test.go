package cli

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevelVerboseOutsideProduction(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, logLevel(false))
	assert.Equal(t, slog.LevelError, logLevel(true))
}
