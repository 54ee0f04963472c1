// Package config loads runtime configuration for slashline. Values come
// from the environment (SLASHLINE_ prefix) with a .env file loaded first;
// CLI flags bound by the entry point take precedence through viper.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"slashline/internal/logger"
)

// Keys used in the viper store and the SLASHLINE_ environment namespace.
const (
	KeyLogLevel         = "log_level"
	KeyLogFile          = "log_file"
	KeyBaseDir          = "base_dir"
	KeyTranscriptFormat = "transcript_format"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	LogLevel         string
	LogFile          string
	BaseDir          string
	TranscriptFormat string
}

// Load resolves settings from the .env file and environment. A missing .env
// is not an error; an unreadable home directory leaves BaseDir empty, which
// disables persistence rather than failing startup.
func Load(v *viper.Viper) *Settings {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Debug("No .env file loaded", "error", err)
	}

	if v == nil {
		v = viper.New()
	}
	v.SetEnvPrefix("SLASHLINE")
	v.AutomaticEnv()

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyTranscriptFormat, "markdown")
	if home, err := os.UserHomeDir(); err == nil {
		v.SetDefault(KeyBaseDir, home)
	}

	return &Settings{
		LogLevel:         v.GetString(KeyLogLevel),
		LogFile:          v.GetString(KeyLogFile),
		BaseDir:          v.GetString(KeyBaseDir),
		TranscriptFormat: v.GetString(KeyTranscriptFormat),
	}
}
