package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BraveAPIKey     string
	OpenAIAPIKey    string
	OpenAIModel     string
	TelegramToken   string
	TelegramChatID  int64
	QueryYear       string
	BatchDelay      time.Duration
	UpstreamTimeout time.Duration
	ServerPort      string
	LogLevel        string
}

func Load() *Config {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		BraveAPIKey:     getEnv("BRAVE_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		TelegramToken:   getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:  getEnvAsInt64("TELEGRAM_CHAT_ID", 0),
		QueryYear:       getEnv("QUERY_YEAR", "2025"),
		BatchDelay:      getEnvAsDuration("BATCH_DELAY", 1*time.Second),
		UpstreamTimeout: getEnvAsDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
