package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Base URLs of the OpenAI-compatible services.
const (
	DeepSeekBaseURL   = "https://api.deepseek.com/v1"
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
)

// OpenAIConfig configures an OpenAI-compatible provider. Name labels the
// provider in logs and errors.
type OpenAIConfig struct {
	Name    string
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAIProvider implements Provider for OpenAI and every service that
// speaks its chat completions API (DeepSeek, OpenRouter, Ollama).
type OpenAIProvider struct {
	client *openai.Client
	name   string
	model  string
}

// NewOpenAIProvider creates an OpenAI-compatible provider.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", cfg.Name)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%s model is required", cfg.Name)
	}
	if cfg.Name == "" {
		cfg.Name = "openai"
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		name:   cfg.Name,
		model:  cfg.Model,
	}, nil
}

// NewOllamaProvider targets a self-hosted Ollama through its
// OpenAI-compatible endpoint.
func NewOllamaProvider(baseURL, model string) (*OpenAIProvider, error) {
	return NewOpenAIProvider(OpenAIConfig{
		Name:    "ollama",
		APIKey:  "ollama", // ignored by Ollama, required by the client
		BaseURL: strings.TrimSuffix(baseURL, "/") + "/v1",
		Model:   model,
	})
}

func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    buildOpenAIMessages(req.Messages),
		Temperature: float32(req.Temperature),
	}
	if req.MaxTokens > 0 {
		chatReq.MaxTokens = req.MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return CompletionResponse{}, p.mapError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return CompletionResponse{}, &ProviderError{Provider: p.name, Err: errors.New("no choices in response")}
	}

	return CompletionResponse{
		Content:      resp.Choices[0].Message.Content,
		Model:        resp.Model,
		Provider:     p.name,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}

func (p *OpenAIProvider) Models() []ModelInfo {
	return []ModelInfo{
		{ID: p.model, Name: p.model, MaxTokens: 4096, Description: p.name + " chat model"},
	}
}

func (p *OpenAIProvider) HealthCheck(ctx context.Context) error {
	if _, err := p.client.ListModels(ctx); err != nil {
		return p.mapError(err)
	}
	return nil
}

func buildOpenAIMessages(msgs []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(msgs))
	for i, m := range msgs {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case RoleSystem:
			role = openai.ChatMessageRoleSystem
		case RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		out[i] = openai.ChatCompletionMessage{Role: role, Content: m.Content}
	}
	return out
}

func (p *OpenAIProvider) mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: p.name, StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ProviderError{Provider: p.name, StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return &ProviderError{Provider: p.name, Err: err}
}
