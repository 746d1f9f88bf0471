package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, cfg.ServiceTimeout)
	require.Equal(t, "info", cfg.LogLevel)
	require.False(t, cfg.UseLocalDetector)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ROOMPAINTER_SERVICE_URL", "http://walls.example.com")
	t.Setenv("ROOMPAINTER_SERVICE_TIMEOUT", "90s")
	t.Setenv("ROOMPAINTER_LOG_LEVEL", "debug")
	t.Setenv("ROOMPAINTER_LOCAL_DETECTOR", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://walls.example.com", cfg.ServiceURL)
	require.Equal(t, 90*time.Second, cfg.ServiceTimeout)
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.UseLocalDetector)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("ROOMPAINTER_SERVICE_TIMEOUT", "soon")
	t.Setenv("ROOMPAINTER_LOCAL_DETECTOR", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, cfg.ServiceTimeout)
	require.False(t, cfg.UseLocalDetector)
}
