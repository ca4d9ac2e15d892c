package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port string

	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	// CORS origin echoed on API responses; "*" by default (quote widget runs
	// on a separate static host).
	AllowedOrigin string
	// Hard cap on the decoded upload, bytes.
	MaxUploadBytes int64

	// Optional answer cache. Empty DSN disables caching.
	DatabaseURL string

	// Bot mode only.
	TelegramBotToken string
	WebhookURL       string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	maxMB, _ := strconv.Atoi(getEnv("MAX_UPLOAD_MB", "8"))
	if maxMB <= 0 {
		maxMB = 8
	}
	return &Config{
		Port: getEnv("PORT", "8000"),

		GeminiAPIKey: mustEnv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		AllowedOrigin:  getEnv("ALLOWED_ORIGIN", "*"),
		MaxUploadBytes: int64(maxMB) << 20,

		DatabaseURL: os.Getenv("DATABASE_URL"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		WebhookURL:       os.Getenv("WEBHOOK_URL"),
	}
}
