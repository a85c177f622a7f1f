package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	supportedDrivers   = []string{"postgres", "sqlite"}
	supportedProviders = []string{"deepseek", "gemini"}
)

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	var errors []string

	if cfg.ServerPort == "" {
		errors = append(errors, ValidationError{"SERVER_PORT", "is required"}.Error())
	}

	if !contains(supportedDrivers, cfg.DBDriver) {
		errors = append(errors, ValidationError{"DB_DRIVER", "must be one of " + strings.Join(supportedDrivers, ", ")}.Error())
	}
	if cfg.DBDriver == "postgres" {
		if cfg.DBHost == "" || cfg.DBName == "" || cfg.DBUser == "" {
			errors = append(errors, ValidationError{"DB_HOST", "postgres requires host, name and user"}.Error())
		}
		if cfg.DBPassword == "" {
			errors = append(errors, secretError(env, "DB_PASSWORD", "db_password"))
		}
	}
	if cfg.DBDriver == "sqlite" && env == Production {
		errors = append(errors, ValidationError{"DB_DRIVER", "sqlite is not supported in production"}.Error())
	}

	if cfg.JWTSecret == "" {
		errors = append(errors, secretError(env, "JWT_SECRET", "jwt_secret"))
	}

	if !contains(supportedProviders, cfg.LLMProvider) {
		errors = append(errors, ValidationError{"LLM_PROVIDER", "must be one of " + strings.Join(supportedProviders, ", ")}.Error())
	}
	if cfg.LLMAPIKey == "" {
		errors = append(errors, secretError(env, "LLM_API_KEY", "llm_api_key"))
	}
	if cfg.LLMTimeout <= 0 {
		errors = append(errors, ValidationError{"LLM_TIMEOUT", "must be positive"}.Error())
	}
	if cfg.GenerationLimit < 0 {
		errors = append(errors, ValidationError{"GENERATION_LIMIT", "must not be negative"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}

// secretError names where a missing sensitive value was expected to come from.
func secretError(env Environment, envVar, secret string) string {
	if env == Production {
		return fmt.Sprintf("%s secret is required", secret)
	}
	return fmt.Sprintf("%s environment variable or %s secret is required", envVar, secret)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
