package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// envFileName is the dotenv file loaded from the working directory
const envFileName = ".env"

// loadDotEnv loads variables from a .env file in the working directory when
// one exists. Variables already present in the real environment win, matching
// godotenv's non-overload behavior.
func loadDotEnv() {
	if _, err := os.Stat(envFileName); err != nil {
		return
	}

	if err := godotenv.Load(envFileName); err != nil {
		slog.Warn("failed to load .env file", "error", err)
	}
}
