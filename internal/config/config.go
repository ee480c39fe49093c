package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	Anki  AnkiConfig
	LLM   LLMConfig
	Cards CardConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	StaticDir          string
	DataDir            string
}

type AnkiConfig struct {
	Host string
	Port int
}

type LLMConfig struct {
	Provider      string // "gemini", "openai" or "custom"
	Model         string
	OpenAIKey     string
	GeminiKey     string
	CustomKey     string
	CustomBaseURL string
	CustomModel   string
}

type CardConfig struct {
	DefaultTags []string
	PageSize    int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			StaticDir:          getEnv("STATIC_DIR", "./static"),
			DataDir:            getEnv("DATA_DIR", "."),
		},
		Anki: AnkiConfig{
			Host: getEnv("ANKI_HOST", "localhost"),
			Port: getEnvAsInt("ANKI_PORT", 8765),
		},
		LLM: LLMConfig{
			Provider:      getEnv("LLM_PROVIDER", "gemini"),
			Model:         getEnv("LLM_MODEL", "gemini-2.5-flash-lite"),
			OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
			GeminiKey:     getEnv("GEMINI_API_KEY", ""),
			CustomKey:     getEnv("CUSTOM_API_KEY", ""),
			CustomBaseURL: getEnv("CUSTOM_ENDPOINT", "http://localhost:11434/v1"),
			CustomModel:   getEnv("CUSTOM_MODEL", "llama2"),
		},
		Cards: CardConfig{
			DefaultTags: getEnvAsSlice("DEFAULT_TAGS", nil),
			PageSize:    getEnvAsInt("BROWSE_PAGE_SIZE", 10),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsSlice(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	parts := strings.Split(strValue, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
