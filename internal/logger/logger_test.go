package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"equipment-tracker/internal/config"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name        string
		cfg         config.LoggerConfig
		expectedErr bool
	}{
		{name: "console", cfg: config.LoggerConfig{Level: "debug", Format: "console"}},
		{name: "json", cfg: config.LoggerConfig{Level: "warn", Format: "json"}},
		{name: "unknown level", cfg: config.LoggerConfig{Level: "loud", Format: "json"}, expectedErr: true},
		{name: "unknown format", cfg: config.LoggerConfig{Level: "info", Format: "xml"}, expectedErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log, err := New(tc.cfg)
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestNewRespectsLevel(t *testing.T) {
	log, err := New(config.LoggerConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.ErrorLevel))
}
