package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port string

	LLMProvider      string
	LLMModel         string
	LLMBaseURL       string
	OpenAIAPIKey     string
	OpenRouterAPIKey string

	BraveAPIKey  string
	BraveBaseURL string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleTokenURL     string
	CalendarEndpoint   string
	KeepEndpoint       string

	HistoryLimit     int
	ResolveTarget    int
	SearchTimeoutSec int
	ReachTimeoutSec  int
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		LLMProvider:      getEnv("LLM_PROVIDER", "openai"),
		LLMModel:         getEnv("LLM_MODEL", "gpt-3.5-turbo"),
		LLMBaseURL:       getEnv("LLM_BASE_URL", ""),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),

		BraveAPIKey:  getEnv("BRAVE_API_KEY", ""),
		BraveBaseURL: getEnv("BRAVE_BASE_URL", ""),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleTokenURL:     getEnv("GOOGLE_TOKEN_URL", ""),
		CalendarEndpoint:   getEnv("GOOGLE_CALENDAR_ENDPOINT", ""),
		KeepEndpoint:       getEnv("GOOGLE_KEEP_ENDPOINT", ""),

		HistoryLimit:     getEnvInt("CHAT_HISTORY_LIMIT", 16),
		ResolveTarget:    getEnvInt("RESOLVE_TARGET_COUNT", 20),
		SearchTimeoutSec: getEnvInt("SEARCH_TIMEOUT_SECONDS", 10),
		ReachTimeoutSec:  getEnvInt("REACHABILITY_TIMEOUT_SECONDS", 8),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
