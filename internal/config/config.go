package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	Port           string
	MongoURI       string
	DBName         string
	LogLevel       string
	LogPretty      bool
	RequestTimeout time.Duration
	LoyaltyConfig  string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = FromEnv()
}

// FromEnv reads the process environment without touching .env files.
func FromEnv() Config {
	return Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "pos"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogPretty:      getBoolEnv("LOG_PRETTY", false),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 5, time.Second),
		LoyaltyConfig:  getEnvOrDefault("LOYALTY_CONFIG", "loyalty.yaml"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
