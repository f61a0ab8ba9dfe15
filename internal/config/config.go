package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Redis      RedisConfig
	Intake     IntakeConfig
	OpenAI     OpenAIConfig
	Env        string
}

// PostgreSQLConfig holds the lead store database configuration. When no
// DSN and no host are configured the server falls back to the in-memory
// lead store.
type PostgreSQLConfig struct {
	DSN                string
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// RedisConfig holds the optional session store configuration. Sessions
// are disabled when Addr is empty.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	SessionTTL int // minutes
}

// IntakeConfig holds intake engine tuning
type IntakeConfig struct {
	MaxBundleSuggestions int
	BundleMarginFactor   float64
	FastTurnaroundDays   int
}

// OpenAIConfig holds the optional message-generation collaborator
// configuration (any OpenAI-compatible chat completion API).
type OpenAIConfig struct {
	APIKey      string
	APIBase     string
	ChatModel   string
	Temperature float64
	TopP        float64
	MaxTokens   int
	Timeout     int // seconds
	Enabled     bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", ""),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "gift_intake"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			SessionTTL: getEnvAsInt("SESSION_TTL_MINUTES", 1440),
		},
		Intake: IntakeConfig{
			MaxBundleSuggestions: getEnvAsInt("INTAKE_MAX_BUNDLES", 3),
			BundleMarginFactor:   getEnvAsFloat("INTAKE_BUNDLE_MARGIN", 0.75),
			FastTurnaroundDays:   getEnvAsInt("INTAKE_FAST_TURNAROUND_DAYS", 6),
		},
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			APIBase:     getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"),
			ChatModel:   getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			Temperature: getEnvAsFloat("OPENAI_CHAT_TEMPERATURE", 0.3),
			TopP:        getEnvAsFloat("OPENAI_CHAT_TOP_P", 0.9),
			MaxTokens:   getEnvAsInt("OPENAI_CHAT_MAX_TOKENS", 1024),
			Timeout:     getEnvAsInt("OPENAI_TIMEOUT", 15),
			Enabled:     getEnv("OPENAI_API_KEY", "") != "",
		},
		Env: getEnv("APP_ENV", "development"),
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns the lead store connection string, or "" when
// no database is configured.
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}
	if c.PostgreSQL.Host == "" {
		return ""
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
