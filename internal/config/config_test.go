package config_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/coc-api/internal/config"
	"github.com/KirkDiggler/coc-api/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 50051, cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.False(t, cfg.Deterministic())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("COC_API_PORT", "6000")
	t.Setenv("COC_API_SESSION_TTL", "90s")
	t.Setenv("COC_API_SEED", "1234")
	t.Setenv("COC_API_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.SessionTTL)
	assert.Equal(t, int64(1234), cfg.Seed)
	assert.True(t, cfg.Deterministic())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadRejectsMalformedEnv(t *testing.T) {
	t.Setenv("COC_API_PORT", "not-a-port")

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		cfg    config.Config
		errMsg string
	}{
		{name: "valid", cfg: config.Config{Port: 50051, SessionTTL: time.Minute}},
		{name: "port too low", cfg: config.Config{Port: 0, SessionTTL: time.Minute}, errMsg: "port"},
		{name: "port too high", cfg: config.Config{Port: 70000, SessionTTL: time.Minute}, errMsg: "port"},
		{name: "zero ttl", cfg: config.Config{Port: 50051}, errMsg: "session_ttl"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestNewLoggerHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{LogLevel: slog.LevelWarn}

	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "key=value")
}
