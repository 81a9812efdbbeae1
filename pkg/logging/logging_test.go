package logging

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLoggerVerbosityLevels(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{9, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		SetupLogger(tt.verbosity)
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), "verbosity %d", tt.verbosity)
	}
}

func TestGetLoggerComponent(t *testing.T) {
	var buf strings.Builder
	logger := GetLogger("deploy").Output(&buf).Level(zerolog.InfoLevel)
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"deploy"`)
	assert.Contains(t, buf.String(), "hello")
}

func TestGetLogFilePath(t *testing.T) {
	path := getLogFilePath()
	assert.Contains(t, path, "codebox")
	assert.True(t, strings.HasSuffix(path, "codebox.log"))
}
