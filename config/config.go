package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Recipe generation
	LLMProvider string
	LLMAPIKey   string
	LLMAPIURL   string
	LLMModel    string
	LLMTimeout  time.Duration

	// Failed generation payload archive
	ArchiveBucket   string
	ArchiveEndpoint string
	AWSRegion       string

	// Generation rate limit per user per hour
	GenerationLimit int

	LogLevel string
}

// DSN returns the postgres connection string for the configured database.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	// Load configuration based on environment
	switch env {
	case CI, Development, Test:
		loadFromEnv(cfg, env)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := applyTypedSettings(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromEnv reads environment variables first and falls back to Docker secrets.
func loadFromEnv(cfg *Config, env Environment) {
	cfg.ServerPort = valueOr("SERVER_PORT", "server_port", "8080")
	cfg.ServerHost = valueOr("SERVER_HOST", "server_host", "0.0.0.0")

	cfg.DBDriver = valueOr("DB_DRIVER", "db_driver", "postgres")
	cfg.DBHost = valueOr("DB_HOST", "db_host", "localhost")
	cfg.DBPort = valueOr("DB_PORT", "db_port", "5432")
	cfg.DBUser = valueOr("DB_USER", "db_user", "postgres")
	cfg.DBPassword = valueOr("DB_PASSWORD", "db_password", "")
	cfg.DBName = valueOr("DB_NAME", "db_name", "pantry")
	cfg.DBSSLMode = valueOr("DB_SSL_MODE", "db_ssl_mode", "disable")
	cfg.SQLitePath = valueOr("SQLITE_PATH", "sqlite_path", "pantry.db")

	cfg.RedisHost = valueOr("REDIS_HOST", "redis_host", "localhost")
	cfg.RedisPort = valueOr("REDIS_PORT", "redis_port", "6379")
	cfg.RedisPassword = valueOr("REDIS_PASSWORD", "redis_password", "")
	cfg.RedisURL = valueOr("REDIS_URL", "redis_url", "")

	cfg.JWTSecret = valueOr("JWT_SECRET", "jwt_secret", "")

	cfg.LLMProvider = valueOr("LLM_PROVIDER", "llm_provider", "deepseek")
	cfg.LLMAPIKey = valueOr("LLM_API_KEY", "llm_api_key", "")
	cfg.LLMAPIURL = valueOr("LLM_API_URL", "llm_api_url", "")
	cfg.LLMModel = valueOr("LLM_MODEL", "llm_model", "")

	cfg.ArchiveBucket = valueOr("ARCHIVE_BUCKET", "archive_bucket", "")
	cfg.ArchiveEndpoint = valueOr("ARCHIVE_ENDPOINT", "archive_endpoint", "")
	cfg.AWSRegion = valueOr("AWS_REGION", "aws_region", "us-east-1")

	logLevel := "debug"
	if env == CI {
		logLevel = "info"
	}
	cfg.LogLevel = valueOr("LOG_LEVEL", "log_level", logLevel)
}

// loadProdConfig loads configuration for production. Sensitive values come ONLY from Docker secrets.
func loadProdConfig(cfg *Config) {
	loadFromEnv(cfg, Production)

	cfg.DBPassword = readSecret("db_password")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.LLMAPIKey = readSecret("llm_api_key")
	if os.Getenv("LOG_LEVEL") == "" && readSecret("log_level") == "" {
		cfg.LogLevel = "info"
	}
}

// applyTypedSettings parses the settings that are not plain strings.
func applyTypedSettings(cfg *Config) error {
	redisDB, err := strconv.Atoi(valueOr("REDIS_DB", "redis_db", "0"))
	if err != nil {
		return ValidationError{Field: "REDIS_DB", Message: "must be an integer"}
	}
	cfg.RedisDB = redisDB

	limit, err := strconv.Atoi(valueOr("GENERATION_LIMIT", "generation_limit", "10"))
	if err != nil {
		return ValidationError{Field: "GENERATION_LIMIT", Message: "must be an integer"}
	}
	cfg.GenerationLimit = limit

	timeout, err := time.ParseDuration(valueOr("LLM_TIMEOUT", "llm_timeout", "60s"))
	if err != nil {
		return ValidationError{Field: "LLM_TIMEOUT", Message: "must be a duration such as 60s"}
	}
	cfg.LLMTimeout = timeout

	origins := valueOr("CORS_ORIGINS", "cors_origins", "http://localhost:5173")
	cfg.CORSOrigins = nil
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}
	return nil
}

// valueOr returns the environment variable, then the Docker secret, then the fallback.
func valueOr(envVar, secretName, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v
	}
	if v := readSecret(secretName); v != "" {
		return v
	}
	return fallback
}

// secretsDir returns the directory holding Docker secrets
func secretsDir() string {
	if dir := os.Getenv("SECRETS_DIR"); dir != "" {
		return dir
	}
	return "/run/secrets"
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	if data, err := os.ReadFile(filepath.Join(secretsDir(), name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
