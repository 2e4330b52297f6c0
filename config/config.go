package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/Wmolina17/backProjectUniversity/internal/logging"
)

type Config struct {
	MongoURI       string
	MongoDB        string
	Port           string
	JWTSecret      string
	TogetherAPIKey string
	TogetherAPIURL string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func LoadConfig() Config {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logging.L().Info(".env file not found, using system environment")
	}

	cfg := Config{
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "mi_app_db"),
		Port:           getEnv("PORT", "8000"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TogetherAPIKey: getEnv("TOGETHER_API_KEY", ""),
		TogetherAPIURL: getEnv("TOGETHER_API_URL", "https://api.together.xyz/v1/completions"),
	}
	return cfg
}
