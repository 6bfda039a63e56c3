package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/oskarlind/sideline/internal/game"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	// Optional env vars fall back to a default.
	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	getEnvInt := func(key string, fallback int) int {
		raw, ok := os.LookupEnv(key)
		if !ok {
			return fallback
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("Error: Environment variable %s must be an integer, got %q.", key, raw)
		}
		return value
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: getEnvOr("MIGRATIONS_DIR", "./migrations"),
		Port:          getEnv("PORT"),
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		Game: GameConfig{
			LengthMinutes:        getEnvInt("GAME_LENGTH_MIN", game.DefaultGameLengthMinutes),
			PeriodCount:          getEnvInt("PERIOD_COUNT", game.DefaultPeriodCount),
			HalftimeBreakSeconds: getEnvInt("HALFTIME_BREAK_SECONDS", game.DefaultHalftimeBreakSeconds),
		},
	}
	return cfg
}
