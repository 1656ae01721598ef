package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBUrl     string
	JWTSecret string
	AppEnv    string

	// CORS
	FrontendOrigins []string

	// Storage backend: "local" or "azure_blob"
	StorageType           string
	LocalStoragePath      string
	AzureConnectionString string
	AzureStorageContainer string

	// External adapters; each one degrades to a stub when its value is empty.
	OpenAIAPIKey           string
	LineChannelSecret      string
	LineChannelAccessToken string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret, exists := os.LookupEnv("JWT_SECRET")
	if !exists || jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Port:                   getEnv("PORT", "8080"),
		DBUrl:                  getEnv("DB_URL", ""),
		JWTSecret:              jwtSecret,
		AppEnv:                 normalizeEnv(getEnv("APP_ENV", "production")),
		FrontendOrigins:        splitOrigins(getEnv("FRONTEND_ORIGINS", "http://localhost:3000")),
		StorageType:            strings.ToLower(getEnv("STORAGE_TYPE", "local")),
		LocalStoragePath:       getEnv("LOCAL_STORAGE_PATH", "./uploads"),
		AzureConnectionString:  getEnv("AZURE_STORAGE_CONNECTION_STRING", ""),
		AzureStorageContainer:  getEnv("AZURE_STORAGE_CONTAINER", "bbc-test"),
		OpenAIAPIKey:           getEnv("OPENAI_API_KEY", ""),
		LineChannelSecret:      getEnv("LINE_CHANNEL_SECRET", ""),
		LineChannelAccessToken: getEnv("LINE_CHANNEL_ACCESS_TOKEN", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitOrigins(value string) []string {
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
