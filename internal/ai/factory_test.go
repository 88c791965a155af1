package ai_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/p-n-ai/pai-thanawi/internal/ai"
	"github.com/p-n-ai/pai-thanawi/internal/platform/config"
)

func TestNewRouterFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.AIConfig
		want []string
	}{
		{"none", config.AIConfig{}, []string{}},
		{
			"gemini first",
			config.AIConfig{
				OpenAI: config.OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini"},
				Google: config.GoogleConfig{APIKey: "k", Model: "gemini-2.0-flash"},
			},
			[]string{"gemini", "openai"},
		},
		{
			"all fallbacks",
			config.AIConfig{
				DeepSeek:   config.DeepSeekConfig{APIKey: "k"},
				OpenRouter: config.OpenRouterConfig{APIKey: "k"},
				Anthropic:  config.AnthropicConfig{APIKey: "k"},
				Ollama:     config.OllamaConfig{Enabled: true, URL: "http://localhost:11434", Model: "qwen2.5:7b"},
			},
			[]string{"deepseek", "openrouter", "anthropic", "ollama"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, err := ai.NewRouterFromConfig(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("NewRouterFromConfig() error = %v", err)
			}
			if got := router.Names(); !slices.Equal(got, tt.want) {
				t.Errorf("Names() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewRouterFromConfig_NoneReportsNotConfigured(t *testing.T) {
	router, err := ai.NewRouterFromConfig(context.Background(), config.AIConfig{})
	if err != nil {
		t.Fatalf("NewRouterFromConfig() error = %v", err)
	}
	if _, err := router.Complete(context.Background(), ai.CompletionRequest{}); !errors.Is(err, ai.ErrNoProviders) {
		t.Errorf("Complete() error = %v, want ErrNoProviders", err)
	}
}
