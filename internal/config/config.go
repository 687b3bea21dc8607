package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	Port     string
	LogLevel zerolog.Level

	CacheEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration

	CatalogFile       string
	CatalogTimeout    time.Duration
	CatalogMaxRetries int

	SearchRateRPS     float64
	SearchRateBurst   int
	PaymentRateRPS    float64
	PaymentRateBurst  int
	PaymentDelay      time.Duration
	LimiterIdleExpiry time.Duration

	CORSOrigins []string
}

// LoadEnv reads a .env file into the process environment if one exists.
// It reports whether a file was loaded.
func LoadEnv(filenames ...string) bool {
	return godotenv.Load(filenames...) == nil
}

func Load() Config {
	return Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnvLevel("LOG_LEVEL", zerolog.InfoLevel),

		CacheEnabled:  getEnvBool("CACHE_ENABLED", true),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisTTL:      getEnvDuration("REDIS_TTL", 5*time.Minute),

		CatalogFile:       getEnv("CATALOG_FILE", ""),
		CatalogTimeout:    getEnvDuration("CATALOG_TIMEOUT", 2*time.Second),
		CatalogMaxRetries: getEnvInt("CATALOG_MAX_RETRIES", 3),

		SearchRateRPS:     getEnvFloat("SEARCH_RATE_RPS", 10),
		SearchRateBurst:   getEnvInt("SEARCH_RATE_BURST", 20),
		PaymentRateRPS:    getEnvFloat("PAYMENT_RATE_RPS", 0.2),
		PaymentRateBurst:  getEnvInt("PAYMENT_RATE_BURST", 5),
		PaymentDelay:      getEnvDuration("PAYMENT_DELAY", 2*time.Second),
		LimiterIdleExpiry: getEnvDuration("LIMITER_IDLE_EXPIRY", 10*time.Minute),

		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return i
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getEnvLevel(key string, defaultValue zerolog.Level) zerolog.Level {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	level, err := zerolog.ParseLevel(strings.ToLower(value))
	if err != nil {
		return defaultValue
	}
	return level
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
