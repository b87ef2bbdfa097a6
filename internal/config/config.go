package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	HTTPPort      string
	JWTSecret     string
	StoreDriver   string // "mongo" or "memory"
	SweepInterval time.Duration
}

func Load() *Config {
	// Best effort; env vars win over .env and both fall back to defaults.
	godotenv.Load()

	return &Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "mcpoker"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		HTTPPort:      getEnv("PORT", "8080"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		StoreDriver:   getEnv("STORE_DRIVER", "mongo"),
		SweepInterval: getEnvDuration("SWEEP_INTERVAL", time.Minute),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
