package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("bogus"))
}

func TestNewWithOutput_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("warn", &buf)

	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Warn().Str("component", "cache").Msg("visible")
	assert.Contains(t, buf.String(), `"component":"cache"`)
	assert.Contains(t, buf.String(), `"message":"visible"`)
}
