package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	DBDialect  string // postgres (default), mysql or sqlite
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	ClientURL string // allowed CORS origin for the frontend

	EmailSender string
	Password    string // SMTP app password

	OpenAIApiURL      string // OpenAI-compatible chat completions endpoint
	OpenAIApiKey      string // empty disables the LLM and keeps the rule table
	OpenAIModel       string
	OpenAITemperature float64
	OpenAIMaxTokens   int

	CounterReconcileCron string // cron spec for counter reconciliation; empty disables
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "5000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBDialect:  getEnv("DB_DIALECT", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "learnify"),
		DBPort:     getEnv("DB_PORT", "5432"),

		ClientURL: getEnv("CLIENT_URL", "http://localhost:3000"),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("PASSWORD", ""),

		OpenAIApiURL:      getEnv("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions"),
		OpenAIApiKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4-turbo-preview"),
		OpenAITemperature: getEnvFloat("OPENAI_TEMPERATURE", 0.7),
		OpenAIMaxTokens:   getEnvInt("OPENAI_MAX_TOKENS", 500),

		CounterReconcileCron: getEnv("COUNTER_RECONCILE_CRON", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.OpenAIApiKey == "" {
		log.Println("Info: OPENAI_API_KEY not set. Chat assistant will use rule-based replies only.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvFloat retrieves an environment variable as a float or returns the default float value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Error converting environment variable %s to float: %v", key, err)
		return defaultValue
	}
	return floatValue
}
