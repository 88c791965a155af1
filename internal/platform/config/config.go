// Package config loads application configuration from environment variables.
// All variables use the LEARN_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Env       string // "production" or "development"
	Server    ServerConfig
	Data      DataConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	AI        AIConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               int
	Host               string
	PublicDir          string
	CORSAllowedOrigins []string
	// TrustedProxyHeader names the client address header set by a reverse
	// proxy (e.g. X-Forwarded-For). Leave empty when clients connect directly.
	TrustedProxyHeader string
}

// DataConfig holds the locations of the static reference documents.
type DataConfig struct {
	CurriculumPath   string
	QuestionBankPath string
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL disables
// usage event persistence.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Dragonfly/Redis connection settings. An empty URL
// disables rate limiting.
type CacheConfig struct {
	URL string
}

// RateLimitConfig holds per-client request limits for the POST endpoints.
type RateLimitConfig struct {
	PerMinute int
}

// AIConfig holds configuration for all AI providers.
type AIConfig struct {
	Google     GoogleConfig
	OpenAI     OpenAIConfig
	DeepSeek   DeepSeekConfig
	OpenRouter OpenRouterConfig
	Anthropic  AnthropicConfig
	Ollama     OllamaConfig
	Timeout    time.Duration
	// Required makes a missing provider fatal at startup.
	Required bool
}

// GoogleConfig holds Google Gemini provider settings.
type GoogleConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds OpenAI provider settings.
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// DeepSeekConfig holds DeepSeek provider settings (OpenAI-compatible).
type DeepSeekConfig struct {
	APIKey string
}

// OpenRouterConfig holds OpenRouter provider settings.
type OpenRouterConfig struct {
	APIKey string
}

// AnthropicConfig holds Anthropic provider settings.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OllamaConfig holds self-hosted Ollama settings.
type OllamaConfig struct {
	Enabled bool
	URL     string
	Model   string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with LEARN_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Env: envStr("LEARN_ENV", "production"),
		Server: ServerConfig{
			Port:               envInt("LEARN_SERVER_PORT", 5000),
			Host:               envStr("LEARN_SERVER_HOST", "0.0.0.0"),
			PublicDir:          envStr("LEARN_PUBLIC_DIR", ""),
			CORSAllowedOrigins: envList("LEARN_CORS_ALLOWED_ORIGINS", []string{"*"}),
			TrustedProxyHeader: envStr("LEARN_TRUSTED_PROXY_HEADER", ""),
		},
		Data: DataConfig{
			CurriculumPath:   envStr("LEARN_CURRICULUM_PATH", "./data/curriculum.json"),
			QuestionBankPath: envStr("LEARN_QUESTION_BANK_PATH", "./data/questions-bank.json"),
		},
		Database: DatabaseConfig{
			URL:      envStr("LEARN_DATABASE_URL", ""),
			MaxConns: envInt("LEARN_DATABASE_MAX_CONNS", 10),
			MinConns: envInt("LEARN_DATABASE_MIN_CONNS", 1),
		},
		Cache: CacheConfig{
			URL: envStr("LEARN_CACHE_URL", ""),
		},
		RateLimit: RateLimitConfig{
			PerMinute: envInt("LEARN_RATE_LIMIT_PER_MINUTE", 20),
		},
		AI: AIConfig{
			Google: GoogleConfig{
				// GEMINI_API_KEY is what existing deployments already export.
				APIKey: envStr("LEARN_AI_GOOGLE_API_KEY", envStr("GEMINI_API_KEY", "")),
				Model:  envStr("LEARN_AI_GOOGLE_MODEL", "gemini-2.0-flash"),
			},
			OpenAI: OpenAIConfig{
				APIKey: envStr("LEARN_AI_OPENAI_API_KEY", ""),
				Model:  envStr("LEARN_AI_OPENAI_MODEL", "gpt-4o-mini"),
			},
			DeepSeek: DeepSeekConfig{
				APIKey: envStr("LEARN_AI_DEEPSEEK_API_KEY", ""),
			},
			OpenRouter: OpenRouterConfig{
				APIKey: envStr("LEARN_AI_OPENROUTER_API_KEY", ""),
			},
			Anthropic: AnthropicConfig{
				APIKey: envStr("LEARN_AI_ANTHROPIC_API_KEY", ""),
				Model:  envStr("LEARN_AI_ANTHROPIC_MODEL", "claude-haiku-4-5"),
			},
			Ollama: OllamaConfig{
				Enabled: envBool("LEARN_AI_OLLAMA_ENABLED", false),
				URL:     envStr("LEARN_AI_OLLAMA_URL", "http://localhost:11434"),
				Model:   envStr("LEARN_AI_OLLAMA_MODEL", "qwen2.5:7b"),
			},
			Timeout:  envDuration("LEARN_AI_TIMEOUT", 60*time.Second),
			Required: envBool("LEARN_AI_REQUIRED", true),
		},
		Log: LogConfig{
			Level:  envStr("LEARN_LOG_LEVEL", "info"),
			Format: envStr("LEARN_LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("LEARN_SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Env != "production" && c.Env != "development" {
		return fmt.Errorf("LEARN_ENV must be 'production' or 'development', got %q", c.Env)
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("LEARN_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}

	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("LEARN_RATE_LIMIT_PER_MINUTE must not be negative, got %d", c.RateLimit.PerMinute)
	}

	if c.AI.Required && !c.HasAIProvider() {
		return fmt.Errorf("at least one AI provider must be configured (set LEARN_AI_GOOGLE_API_KEY or GEMINI_API_KEY)")
	}

	return nil
}

// HasAIProvider returns true if at least one AI provider is configured.
func (c *Config) HasAIProvider() bool {
	return c.AI.Google.APIKey != "" ||
		c.AI.OpenAI.APIKey != "" ||
		c.AI.DeepSeek.APIKey != "" ||
		c.AI.OpenRouter.APIKey != "" ||
		c.AI.Anthropic.APIKey != "" ||
		c.AI.Ollama.Enabled
}

// IsDevelopment reports whether error details may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
