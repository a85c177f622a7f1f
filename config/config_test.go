package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "pantry")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "pantry_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "pantry", cfg.DBUser)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, "pantry_test", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, "deepseek", cfg.LLMProvider)
	assert.Equal(t, 15*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 10, cfg.GenerationLimit)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadConfigFromSecrets(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENV", "production")
	t.Setenv("CI", "")
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("JWT_SECRET", "ignored-in-production")

	secrets := map[string]string{
		"db_password": "from-file",
		"jwt_secret":  "jwt-from-file\n",
		"llm_api_key": "key-from-file",
		"db_host":     "postgres",
	}
	for name, value := range secrets {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value), 0o600))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.DBPassword)
	assert.Equal(t, "jwt-from-file", cfg.JWTSecret)
	assert.Equal(t, "key-from-file", cfg.LLMAPIKey)
	assert.Equal(t, "postgres", cfg.DBHost)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("CI", "")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("LLM_PROVIDER", "openai")

	cfg, err := LoadConfig()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "LLM_API_KEY")
	assert.Contains(t, err.Error(), "LLM_PROVIDER")
}

func TestLoadConfigRejectsBadTimeout(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("LLM_TIMEOUT", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_TIMEOUT")
}

func TestParseEnvironment(t *testing.T) {
	tests := map[string]Environment{
		"production": Production,
		"PROD":       Production,
		" test ":     Test,
		"ci":         CI,
		"":           Development,
		"staging":    Development,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseEnvironment(in), in)
	}
}

func TestGetEnvironmentPrefersCI(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("ENV", "production")
	assert.Equal(t, CI, GetEnvironment())
	assert.Equal(t, "test", GinMode())
}

func TestNewS3Config(t *testing.T) {
	cfg, err := NewS3Config(context.Background(), &Config{})
	require.NoError(t, err)
	assert.Nil(t, cfg)

	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	cfg, err = NewS3Config(context.Background(), &Config{
		ArchiveBucket:   "generation-archive",
		ArchiveEndpoint: "http://localhost:9000",
		AWSRegion:       "us-east-1",
	})
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "generation-archive", cfg.BucketName)
	assert.NotNil(t, cfg.Client)
}
