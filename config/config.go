package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     string
	StorageBackend string // "dynamodb" or "memory"
	AWSRegion      string
	DynamoEndpoint string // non-empty: local emulator, tables auto-created
	RabbitURL      string // empty: event publishing disabled
	SeedData       bool
	SeedValue      int64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		StorageBackend: getEnv("STORAGE_BACKEND", "dynamodb"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		DynamoEndpoint: getEnv("DYNAMODB_ENDPOINT", ""),
		RabbitURL:      getEnv("RABBITMQ_URL", ""),
		SeedData:       getEnvBool("SEED_DATA", false),
		SeedValue:      getEnvInt64("SEED_VALUE", 1),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
