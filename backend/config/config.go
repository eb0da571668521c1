package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DatabasePath       string
	JWTSecret          string
	TokenExpireMinutes int
	ServerPort         string
	UploadDir          string
	SuperadminEmail    string
	SuperadminPassword string
	AIAPIURL           string
	AIAPIKey           string
	AIModel            string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:             getEnv("DB_HOST", ""),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBName:             getEnv("DB_NAME", "unichance"),
		DatabasePath:       getEnv("DATABASE_PATH", "app_db.sqlite3"),
		JWTSecret:          getEnv("JWT_SECRET", "secret"),
		TokenExpireMinutes: getEnvInt("TOKEN_EXPIRE_MINUTES", 1440),
		ServerPort:         getEnv("SERVER_PORT", "8000"),
		UploadDir:          getEnv("UPLOAD_DIR", "static/images"),
		SuperadminEmail:    getEnv("SUPERADMIN_EMAIL", ""),
		SuperadminPassword: getEnv("SUPERADMIN_PASSWORD", ""),
		AIAPIURL:           getEnv("AI_API_URL", "https://api.openai.com/v1"),
		AIAPIKey:           getEnv("AI_API_KEY", ""),
		AIModel:            getEnv("AI_MODEL", "gpt-4o-mini"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
