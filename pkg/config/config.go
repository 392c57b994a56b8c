package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	Environment     string
	FirebaseProject string
	StorageBucket   string

	// Durable cache tier (sqlite file, schema version).
	CachePath    string
	CacheVersion int

	// Optional shared fast tier. Empty address keeps the in-process tier.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Presence heartbeat tuning.
	HeartbeatInterval time.Duration
	AwayThreshold     time.Duration

	// Chat message rate limit: MessageBurst tokens, one refilled every
	// MessageRefill.
	MessageBurst  int
	MessageRefill time.Duration
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		FirebaseProject:   getEnv("FIREBASE_PROJECT_ID", ""),
		StorageBucket:     getEnv("STORAGE_BUCKET", ""),
		CachePath:         getEnv("CACHE_PATH", "neohand_cache.db"),
		CacheVersion:      getEnvAsInt("CACHE_VERSION", 1),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		HeartbeatInterval: getEnvAsDuration("HEARTBEAT_INTERVAL", 30*time.Second),
		AwayThreshold:     getEnvAsDuration("AWAY_THRESHOLD", 5*time.Minute),
		MessageBurst:      getEnvAsInt("MESSAGE_BURST", 10),
		MessageRefill:     getEnvAsDuration("MESSAGE_REFILL", 6*time.Second),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}
