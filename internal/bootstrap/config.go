package bootstrap

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServerAddr  string
	CORSOrigins []string
	LogLevel    string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTimeout  time.Duration

	SummaryCacheTTL   time.Duration
	AnalyticsTimezone string
}

func LoadConfig() *Config {
	return &Config{
		ServerAddr:  getEnv("SERVER_ADDR", ":8080"),
		CORSOrigins: parseList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DatabaseDSN: getEnv("DATABASE_DSN", ""),

		RedisAddr:     lookupEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisTimeout:  getEnvDuration("REDIS_TIMEOUT", 500*time.Millisecond),

		SummaryCacheTTL:   getEnvDuration("SUMMARY_CACHE_TTL", 30*time.Second),
		AnalyticsTimezone: getEnv("ANALYTICS_TIMEZONE", "UTC"),
	}
}

// Persistent reports whether a real database is configured. Without one
// the service keeps its data in an in-memory SQLite database.
func (c *Config) Persistent() bool {
	return c.DatabaseDSN != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// lookupEnv is getEnv for settings where an explicit empty value means
// "off".
func lookupEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

// CacheEnabled reports whether summaries are cached in redis.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != "" && c.SummaryCacheTTL > 0
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d >= 0 {
			return d
		}
	}
	return defaultValue
}

func parseList(envValue string) []string {
	var items []string
	for _, item := range strings.Split(envValue, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return []string{"*"}
	}
	return items
}
