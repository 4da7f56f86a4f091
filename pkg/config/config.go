package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string
	UserID    string

	// Capture store
	CaptureStore string
	DatabaseURL  string
	SQLitePath   string
	RedisURL     string

	// AI completion
	AnthropicAPIKey   string
	AnthropicModel    string
	AIMaxTokens       int
	AITimeout         time.Duration
	AIBreakerFailures int
	AIBreakerTimeout  time.Duration
	AICacheSize       int
	AICacheTTL        time.Duration

	// Local classifier scoring
	ConfidenceThreshold float64
	BaseConfidence      float64
	DateWeight          float64
	AmountWeight        float64
	TimeWeight          float64

	// MCP
	MCPAddr      string
	MCPAuthToken string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", ""),
		UserID:    getEnv("MEDPLANNER_USER_ID", "00000000-0000-0000-0000-000000000001"),

		CaptureStore: strings.ToLower(getEnv("CAPTURE_STORE", "")),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		SQLitePath:   getEnv("SQLITE_PATH", ""),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),

		AnthropicAPIKey:   getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:    getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		AIMaxTokens:       getIntEnv("AI_MAX_TOKENS", 512),
		AITimeout:         getDurationEnv("AI_TIMEOUT", 8*time.Second),
		AIBreakerFailures: getIntEnv("AI_BREAKER_FAILURES", 3),
		AIBreakerTimeout:  getDurationEnv("AI_BREAKER_TIMEOUT", 30*time.Second),
		AICacheSize:       getIntEnv("AI_CACHE_SIZE", 256),
		AICacheTTL:        getDurationEnv("AI_CACHE_TTL", 12*time.Hour),

		ConfidenceThreshold: getFloatEnv("CAPTURE_CONFIDENCE_THRESHOLD", 0.75),
		BaseConfidence:      getFloatEnv("CAPTURE_BASE_CONFIDENCE", 0.5),
		DateWeight:          getFloatEnv("CAPTURE_DATE_WEIGHT", 0.2),
		AmountWeight:        getFloatEnv("CAPTURE_AMOUNT_WEIGHT", 0.15),
		TimeWeight:          getFloatEnv("CAPTURE_TIME_WEIGHT", 0.15),

		MCPAddr:      getEnv("MCP_ADDR", "127.0.0.1:8082"),
		MCPAuthToken: getEnv("MCP_AUTH_TOKEN", ""),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AIEnabled reports whether low-confidence parses can be escalated.
func (c *Config) AIEnabled() bool {
	return c.AnthropicAPIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
