package config

import (
	"os"
	"strings"
)

type Config struct {
	Port string

	TelegramBotToken string
	WebhookURL       string

	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	// History snapshot location: Postgres when DatabaseURL is set,
	// otherwise a JSON file at HistoryPath.
	DatabaseURL string
	HistoryPath string
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// Load reads everything from the environment. Nothing is required here:
// the bot binary checks its token itself, and a missing Gemini key is
// reported on the first solve attempt rather than at startup.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		HistoryPath: getEnv("HISTORY_PATH", "history.json"),
	}
}
