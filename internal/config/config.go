package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	ModelBaseURL   string
	ModelAPIKey    string
	ModelID        string
	ModelMaxTokens int
	ModelTimeoutS  int

	OCRBaseURL  string
	OCRAPIKey   string
	OCRTimeoutS int

	PDFTextMaxChars  int
	StrictMediaTypes bool

	BreakerEnabled bool
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		ModelBaseURL:   mustEnv("MODEL_BASE_URL", "https://api.anthropic.com"),
		ModelAPIKey:    mustEnv("MODEL_API_KEY", ""),
		ModelID:        mustEnv("MODEL_ID", "claude-3-sonnet-20240229"),
		ModelMaxTokens: mustEnvInt("MODEL_MAX_TOKENS", 2048),
		ModelTimeoutS:  mustEnvInt("MODEL_TIMEOUT_SECONDS", 120),

		OCRBaseURL:  mustEnv("OCR_BASE_URL", "http://localhost:8090"),
		OCRAPIKey:   mustEnv("OCR_API_KEY", ""),
		OCRTimeoutS: mustEnvInt("OCR_TIMEOUT_SECONDS", 60),

		PDFTextMaxChars:  mustEnvInt("PDF_TEXT_MAX_CHARS", 4000),
		StrictMediaTypes: mustEnvBool("STRICT_MEDIA_TYPES", false),

		BreakerEnabled: mustEnvBool("BREAKER_ENABLED", true),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
