package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from .env file
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
}

// Getenv returns the value of key or fallback when unset.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetenvInt returns the integer value of key or fallback when unset or
// unparseable.
func GetenvInt(key string, fallback int) int {
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

// CohereAPIKey returns the Cohere API key from environment variables
func CohereAPIKey() string {
	return os.Getenv("COHERE_API_KEY")
}

// CohereModel returns the chat model name, defaulting to the model the
// dataset was built with.
func CohereModel() string {
	return Getenv("COHERE_MODEL", "command-a-03-2025")
}

// CohereBaseURL returns the chat endpoint URL.
func CohereBaseURL() string {
	return Getenv("COHERE_BASE_URL", "https://api.cohere.com/v2/chat")
}
