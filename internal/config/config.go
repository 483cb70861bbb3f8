// Package config loads twig's runtime settings. Everything comes from
// TWIG_* environment variables; twig reads no config files.
package config

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Settings holds the runtime options.
type Settings struct {
	// LogLevel is a logrus level name, default "info".
	LogLevel string
	// LogFile receives structured logs when set. Without it logs are
	// discarded: the selector owns the terminal.
	LogFile string
	// NoColor disables colored plain output. The NO_COLOR convention
	// is honored next to TWIG_NO_COLOR.
	NoColor bool
	// NoUpdateCheck suppresses the daily release notice.
	NoUpdateCheck bool
}

// Load reads settings from the environment.
func Load() *Settings {
	v := viper.New()
	v.SetEnvPrefix("twig")
	v.AutomaticEnv()
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("no_color", false)
	v.SetDefault("no_update_check", false)

	s := &Settings{
		LogLevel:      v.GetString("log_level"),
		LogFile:       v.GetString("log_file"),
		NoColor:       v.GetBool("no_color"),
		NoUpdateCheck: v.GetBool("no_update_check"),
	}
	if os.Getenv("NO_COLOR") != "" {
		s.NoColor = true
	}
	return s
}

// SetupLogging points logrus at the configured sink. A bad level or an
// unwritable file falls back to discarding rather than breaking the TUI.
func SetupLogging(s *Settings) {
	level, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if s.LogFile == "" {
		logrus.SetOutput(io.Discard)
		return
	}
	f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logrus.SetOutput(io.Discard)
		return
	}
	logrus.SetOutput(f)
}
