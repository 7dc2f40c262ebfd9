package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	LogLevel          string
	YearConstantsPath string
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	Cfg = &AppConfig{
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		YearConstantsPath: getEnv("YEAR_CONSTANTS_PATH", "data/yearly_constants.json"),
	}

	log.Printf("Configuration loaded: LogLevel=%s, YearConstantsPath=%s",
		Cfg.LogLevel, Cfg.YearConstantsPath)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}
