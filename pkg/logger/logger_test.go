package logger_test

import (
	"bytes"
	"testing"

	"github.com/roffe/speedometer/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInitLevels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	tests := []struct {
		name           string
		debug, verbose bool
		want           zerolog.Level
	}{
		{name: "default", want: zerolog.WarnLevel},
		{name: "verbose", verbose: true, want: zerolog.InfoLevel},
		{name: "debug", debug: true, want: zerolog.DebugLevel},
		{name: "debug wins", debug: true, verbose: true, want: zerolog.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger.Init(tt.debug, tt.verbose, &buf)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestWithComponent(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	logger.Init(false, true, &buf)
	l := logger.With("gauge")
	l.Info().Float64("value", 42).Msg("moved")
	logger.Debug().Msg("hidden")

	out := buf.String()
	assert.Contains(t, out, "component=gauge")
	assert.Contains(t, out, "moved")
	assert.NotContains(t, out, "hidden")
}
