// Package tutor answers curriculum-scoped student questions through the AI
// gateway.
package tutor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/p-n-ai/pai-thanawi/internal/ai"
	"github.com/p-n-ai/pai-thanawi/internal/curriculum"
	"github.com/p-n-ai/pai-thanawi/internal/events"
)

const maxAnswerTokens = 2048

// Completer is the slice of the AI router the service needs.
type Completer interface {
	Complete(ctx context.Context, req ai.CompletionRequest) (ai.CompletionResponse, error)
}

// Config holds dependencies for the Service.
type Config struct {
	Curriculum *curriculum.Store
	AI         Completer     // nil means not configured
	Events     events.Logger // optional
	Timeout    time.Duration // upper bound on the completion call
}

// Service answers questions.
type Service struct {
	curriculum *curriculum.Store
	ai         Completer
	events     events.Logger
	timeout    time.Duration
}

// NewService creates a Service. A nil curriculum validates against an
// empty store and therefore rejects everything.
func NewService(cfg Config) *Service {
	store := cfg.Curriculum
	if store == nil {
		store = curriculum.Empty()
	}
	logger := cfg.Events
	if logger == nil {
		logger = events.Nop{}
	}
	return &Service{
		curriculum: store,
		ai:         cfg.AI,
		events:     logger,
		timeout:    cfg.Timeout,
	}
}

// AskRequest is a student's question with its curriculum selection.
type AskRequest struct {
	Level    string
	Branch   string
	Subject  string
	Question string
}

// Answer is the AI's reply plus bookkeeping for logs.
type Answer struct {
	Text         string
	Level        curriculum.Level
	Branch       string
	Subject      string
	Question     string
	Provider     string
	Model        string
	InputTokens  int
	OutputTokens int
}

// Answer validates the selection, composes the prompt and makes exactly one
// completion call. The model's text is returned unmodified.
// The call carries the policy as a system message and UserMessage as the
// user turn; a provider that merges them into one message sends exactly
// ComposePrompt.
func (s *Service) Answer(ctx context.Context, req AskRequest) (Answer, error) {
	pc, level, err := s.promptContext(req)
	if err != nil {
		return Answer{}, err
	}
	if s.ai == nil {
		return Answer{}, ErrNotConfigured
	}
	subject := pc.Subject

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.ai.Complete(ctx, ai.CompletionRequest{
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: systemPolicy},
			{Role: ai.RoleUser, Content: UserMessage(pc)},
		},
		MaxTokens: maxAnswerTokens,
	})
	if err != nil {
		if errors.Is(err, ai.ErrNoProviders) {
			return Answer{}, ErrNotConfigured
		}
		upstream := &UpstreamError{Err: err}
		slog.Warn("AI completion failed",
			"level", level,
			"subject", subject,
			"rate_limited", upstream.RateLimited(),
			"unavailable", upstream.Unavailable(),
			"error", err,
		)
		return Answer{}, upstream
	}

	// First-year requests may carry a stray branch; it is echoed but not
	// recorded.
	branch := strings.TrimSpace(req.Branch)
	eventBranch := ""
	if level.HasBranches() {
		eventBranch = branch
	}

	slog.Info("question answered",
		"level", level,
		"branch", eventBranch,
		"subject", subject,
		"provider", resp.Provider,
		"model", resp.Model,
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
	)

	events.Record(ctx, s.events, events.Event{
		Type:    events.TypeQuestionAsked,
		Level:   string(level),
		Branch:  eventBranch,
		Subject: subject,
		Data: map[string]any{
			"question_chars": utf8.RuneCountInString(req.Question),
			"provider":       resp.Provider,
			"model":          resp.Model,
			"input_tokens":   resp.InputTokens,
			"output_tokens":  resp.OutputTokens,
		},
	})

	return Answer{
		Text:         resp.Content,
		Level:        level,
		Branch:       branch,
		Subject:      subject,
		Question:     req.Question,
		Provider:     resp.Provider,
		Model:        resp.Model,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
	}, nil
}

// Preview returns the single-string prompt for req without calling any
// provider.
func (s *Service) Preview(req AskRequest) (string, error) {
	pc, _, err := s.promptContext(req)
	if err != nil {
		return "", err
	}
	return ComposePrompt(pc), nil
}

func (s *Service) promptContext(req AskRequest) (PromptContext, curriculum.Level, error) {
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Level) == "" {
		return PromptContext{}, "", ErrMissingFields
	}

	if res := s.curriculum.Validate(req.Level, req.Branch, req.Subject); !res.Valid {
		return PromptContext{}, "", &ValidationError{Message: res.Message}
	}

	// Validate succeeded, so the level parses and the branch resolves.
	level, _ := curriculum.ParseLevel(req.Level)
	var branchName string
	if level.HasBranches() {
		branchName, _ = s.curriculum.BranchName(level, req.Branch)
	}

	return PromptContext{
		LevelLabel: level.Label(),
		BranchName: branchName,
		Subject:    curriculum.Normalize(req.Subject),
		Question:   req.Question,
	}, level, nil
}
