package config

import (
	"os"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestGetEnvInt(t *testing.T) {
	defer os.Unsetenv("TEST_CONFIG_INT")

	require.Equal(t, 7, getEnvInt("TEST_CONFIG_INT", 7))

	os.Setenv("TEST_CONFIG_INT", "42")
	require.Equal(t, 42, getEnvInt("TEST_CONFIG_INT", 7))

	os.Setenv("TEST_CONFIG_INT", "forty")
	require.Equal(t, 7, getEnvInt("TEST_CONFIG_INT", 7))
}

func TestGetEnvMillis(t *testing.T) {
	defer os.Unsetenv("TEST_CONFIG_MS")

	require.Equal(t, time.Second, getEnvMillis("TEST_CONFIG_MS", time.Second))

	os.Setenv("TEST_CONFIG_MS", "150")
	require.Equal(t, 150*time.Millisecond, getEnvMillis("TEST_CONFIG_MS", time.Second))

	os.Setenv("TEST_CONFIG_MS", "-5")
	require.Equal(t, time.Second, getEnvMillis("TEST_CONFIG_MS", time.Second))
}

func TestDefaults(t *testing.T) {
	b := Board()
	require.Equal(t, int32(BoardWidth), b.Width)
	require.Equal(t, int32(CellSize), b.CellSize)
	require.Equal(t, TickFloor, Tuning().IntervalFloor)
}

func TestSetLogLevel(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	SetLogLevel("debug")
	require.Equal(t, log.DebugLevel, log.GetLevel())

	SetLogLevel("loud")
	require.Equal(t, log.InfoLevel, log.GetLevel())
}
