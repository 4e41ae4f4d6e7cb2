package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the environment-level application configuration. Run
// parameters (days, policy, timing) come from flags and the scenario file,
// not from here.
type AppConfig struct {
	DataPath  string
	LogDir    string
	OutputDir string
	// DefaultDays and DefaultRestarts seed the CLI flag defaults.
	DefaultDays     int
	DefaultRestarts int
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory first
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve Data Paths
	dataPath := os.Getenv("WXSIM_DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	outputDir := getEnv("WXSIM_OUTPUT_DIR", filepath.Join(dataPath, "out"))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", outputDir).Msg("Failed to create output directory")
	}

	cfg := &AppConfig{
		DataPath:        dataPath,
		LogDir:          logDir,
		OutputDir:       outputDir,
		DefaultDays:     getEnvInt("WXSIM_DEFAULT_DAYS", 30),
		DefaultRestarts: getEnvInt("WXSIM_DEFAULT_RESTARTS", 4),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
