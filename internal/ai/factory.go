package ai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/p-n-ai/pai-thanawi/internal/platform/config"
)

// Default models of the secondary providers.
const (
	DefaultDeepSeekModel   = "deepseek-chat"
	DefaultOpenRouterModel = "google/gemini-2.0-flash-001"
)

// NewRouterFromConfig registers every configured provider. Gemini comes
// first and the rest are fallbacks in a fixed order. A router with no
// providers is valid; its Complete returns ErrNoProviders.
func NewRouterFromConfig(ctx context.Context, cfg config.AIConfig) (*Router, error) {
	router := NewRouter()

	if cfg.Google.APIKey != "" {
		p, err := NewGeminiProvider(ctx, cfg.Google.APIKey, cfg.Google.Model)
		if err != nil {
			return nil, fmt.Errorf("gemini provider: %w", err)
		}
		router.Register("gemini", p)
	}

	compat := []OpenAIConfig{
		{Name: "openai", APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model},
		{Name: "deepseek", APIKey: cfg.DeepSeek.APIKey, BaseURL: DeepSeekBaseURL, Model: DefaultDeepSeekModel},
		{Name: "openrouter", APIKey: cfg.OpenRouter.APIKey, BaseURL: OpenRouterBaseURL, Model: DefaultOpenRouterModel},
	}
	for _, c := range compat {
		if c.APIKey == "" {
			continue
		}
		p, err := NewOpenAIProvider(c)
		if err != nil {
			return nil, fmt.Errorf("%s provider: %w", c.Name, err)
		}
		router.Register(c.Name, p)
	}

	if cfg.Anthropic.APIKey != "" {
		p, err := NewAnthropicProvider(cfg.Anthropic.APIKey, cfg.Anthropic.Model)
		if err != nil {
			return nil, fmt.Errorf("anthropic provider: %w", err)
		}
		router.Register("anthropic", p)
	}

	if cfg.Ollama.Enabled {
		p, err := NewOllamaProvider(cfg.Ollama.URL, cfg.Ollama.Model)
		if err != nil {
			return nil, fmt.Errorf("ollama provider: %w", err)
		}
		router.Register("ollama", p)
	}

	slog.Info("AI providers registered", "providers", router.Names())
	return router, nil
}
