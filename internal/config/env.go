package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/mgpai22/ytscript/internal/logging"
)

// LoadEnv loads the dotenv files that exist. Variables already set in the
// process environment are not overridden.
func LoadEnv(logger *logging.Logger, files ...string) {
	for _, envFile := range files {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		logger.Debugw("Loading environment file", "file", envFile)
		if err := godotenv.Load(envFile); err != nil {
			logger.Warnw("Failed to load environment file", "file", envFile, "error", err)
		}
	}
}

// API key variable for a provider
func APIKeyEnv(provider string) string {
	switch provider {
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "gemini":
		return "GEMINI_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

// Resolve applies flag > environment > config file precedence.
func Resolve(flag, envName, fromConfig string) string {
	if flag != "" {
		return flag
	}
	if envName != "" {
		if v := os.Getenv(envName); v != "" {
			return v
		}
	}
	return fromConfig
}
