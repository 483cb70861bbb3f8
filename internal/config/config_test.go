package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	s := Load()

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "", s.LogFile)
	assert.False(t, s.NoColor)
	assert.False(t, s.NoUpdateCheck)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TWIG_LOG_LEVEL", "debug")
	t.Setenv("TWIG_LOG_FILE", "/tmp/twig.log")
	t.Setenv("TWIG_NO_COLOR", "true")
	t.Setenv("TWIG_NO_UPDATE_CHECK", "1")

	s := Load()

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "/tmp/twig.log", s.LogFile)
	assert.True(t, s.NoColor)
	assert.True(t, s.NoUpdateCheck)
}

func TestLoad_HonorsNoColorConvention(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	s := Load()
	assert.True(t, s.NoColor)
}

func TestSetupLogging_DiscardsWithoutFile(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)

	SetupLogging(&Settings{LogLevel: "debug"})

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestSetupLogging_WritesToFile(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)

	path := filepath.Join(t.TempDir(), "twig.log")
	SetupLogging(&Settings{LogLevel: "debug", LogFile: path})

	logrus.Debug("hello from the test")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the test")
}

func TestSetupLogging_BadLevelFallsBack(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)

	SetupLogging(&Settings{LogLevel: "shouting"})

	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
