package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Database DatabaseConfig
	Gemini   GeminiConfig
	Search   SearchConfig
	Cache    CacheConfig
	APIPort  string
	LogLevel string

	// MaxImageBytes caps uploaded image size.
	MaxImageBytes int64
}

type DatabaseConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MinConns int
}

type GeminiConfig struct {
	APIKey     string
	Model      string
	MaxRetries int
	RetryDelay time.Duration
}

type SearchConfig struct {
	APIKey string
	CX     string
	// RequestsPerSecond throttles Custom Search calls; the free tier
	// rejects bursts.
	RequestsPerSecond float64
}

type CacheConfig struct {
	TTL       time.Duration
	SizeLimit int
}

func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			Name:     getEnv("DB_NAME", "carscope"),
			User:     getEnv("DB_USER", "carscope"),
			Password: getEnv("DB_PASSWORD", ""),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			Model:      getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			MaxRetries: getEnvInt("GEMINI_MAX_RETRIES", 3),
			RetryDelay: getEnvDuration("GEMINI_RETRY_DELAY", 2*time.Second),
		},
		Search: SearchConfig{
			APIKey:            getEnv("GOOGLE_SEARCH_API_KEY", ""),
			CX:                getEnv("GOOGLE_SEARCH_CX", ""),
			RequestsPerSecond: getEnvFloat("SEARCH_RPS", 2.0),
		},
		Cache: CacheConfig{
			TTL:       getEnvDuration("CACHE_TTL", time.Hour),
			SizeLimit: getEnvInt("CACHE_SIZE_LIMIT", 1000),
		},
		APIPort:       getEnv("API_PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		MaxImageBytes: int64(getEnvInt("MAX_IMAGE_BYTES", 10<<20)),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
