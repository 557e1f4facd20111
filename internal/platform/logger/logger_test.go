package logger

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fahrvergleich/fahrvergleich-api/internal/config"
)

func TestSetupReturnsLogger(t *testing.T) {
	testCases := []struct {
		name     string
		logLevel string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level falls back to info", "verbose"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log, err := Setup(config.ServerConfig{LogLevel: tc.logLevel})
			require.NoError(t, err)
			require.NotNil(t, log)
		})
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))
}

func TestWithLoggerRoundTrip(t *testing.T) {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := WithLogger(context.Background(), log)

	assert.Same(t, log, FromContext(ctx))
	assert.Same(t, log, FromContextOrDefault(ctx, nil))
}

func TestFromContextOrDefaultPrefersProvidedDefault(t *testing.T) {
	def := slog.New(slog.NewTextHandler(os.Stderr, nil))
	assert.Same(t, def, FromContextOrDefault(context.Background(), def))
}
