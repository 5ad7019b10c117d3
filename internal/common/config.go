package common

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Notion  NotionConfig
	LLM     LLMConfig
	History HistoryConfig
	Server  ServerConfig
}

// NotionConfig holds the default destination credentials
type NotionConfig struct {
	APIKey     string
	DatabaseID string
	Timeout    time.Duration
}

// LLMConfig holds extraction model configuration
type LLMConfig struct {
	Provider      string // gemini | openai
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	Temperature   float32
	Timeout       time.Duration
	MaxDocumentMB int
}

// HistoryConfig holds the upload history store configuration
type HistoryConfig struct {
	URL      string // sqlite file path / "file:..." DSN, or postgres:// URL; empty disables history
	MaxConns int
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr string
	GRPCAddr string
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// LoadEnvFile loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return WrapError(err, "load env file")
	}
	return nil
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Notion: NotionConfig{
			APIKey:     getEnv("NOTION_API_KEY", ""),
			DatabaseID: getEnv("NOTION_DATABASE_ID", ""),
			Timeout:    getEnvAsDuration("NOTION_TIMEOUT", 30*time.Second),
		},
		LLM: LLMConfig{
			Provider:      strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
			GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Temperature:   getEnvAsFloat32("LLM_TEMPERATURE", 0.0),
			Timeout:       getEnvAsDuration("LLM_TIMEOUT", 90*time.Second),
			MaxDocumentMB: getEnvAsInt("MAX_DOCUMENT_MB", 20),
		},
		History: HistoryConfig{
			URL:      getEnv("HISTORY_DB_URL", "file:resumes-history.db"),
			MaxConns: getEnvAsInt("HISTORY_DB_MAX_CONNS", 4),
		},
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
			GRPCAddr: getEnv("GRPC_ADDR", ":9090"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
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

// ValidateDestination checks that default Notion credentials are present.
func (c *Config) ValidateDestination() error {
	v := NewValidator().
		Field("NOTION_API_KEY", c.Notion.APIKey, Required).
		Field("NOTION_DATABASE_ID", c.Notion.DatabaseID, Required)
	return v.Error()
}

// ValidateLLM checks the extraction provider and its key.
func (c *Config) ValidateLLM() error {
	v := NewValidator().Field("LLM_PROVIDER", c.LLM.Provider, Required, OneOf(ProviderGemini, ProviderOpenAI))
	switch c.LLM.Provider {
	case ProviderGemini:
		v.Field("GEMINI_API_KEY", c.LLM.GeminiAPIKey, Required)
	case ProviderOpenAI:
		v.Field("OPENAI_API_KEY", c.LLM.OpenAIAPIKey, Required)
	}
	return v.Error()
}
