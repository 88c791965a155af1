package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider("test-key", "", option.WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("NewAnthropicProvider() error = %v", err)
	}
	return p
}

func TestAnthropicProvider_Complete(t *testing.T) {
	var gotBody map[string]any
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Errorf("unexpected api key header: %q", r.Header.Get("X-Api-Key"))
		}
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"model":       "claude-haiku-4-5",
			"content":     []map[string]any{{"type": "text", "text": "Bonjour"}},
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 20, "output_tokens": 3},
		})
	})

	resp, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "policy"},
			{Role: RoleUser, Content: "hello"},
		},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Content != "Bonjour" {
		t.Errorf("Content = %q, want Bonjour", resp.Content)
	}
	if resp.InputTokens != 20 || resp.OutputTokens != 3 {
		t.Errorf("tokens = (%d, %d), want (20, 3)", resp.InputTokens, resp.OutputTokens)
	}
	if gotBody["system"] == nil {
		t.Error("system prompt should be sent in the system field")
	}
	if msgs, _ := gotBody["messages"].([]any); len(msgs) != 1 {
		t.Errorf("messages = %v, want one user message", gotBody["messages"])
	}
	if mt, _ := gotBody["max_tokens"].(float64); int(mt) != defaultMaxTokens {
		t.Errorf("max_tokens = %v, want %d", gotBody["max_tokens"], defaultMaxTokens)
	}
}

func TestAnthropicProvider_NoRetryOnOverload(t *testing.T) {
	calls := 0
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(529)
		w.Write([]byte(`{"type": "error", "error": {"type": "overloaded_error", "message": "Overloaded"}}`))
	})

	_, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})

	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("Complete() error = %T (%v), want *ProviderError", err, err)
	}
	if perr.StatusCode != 529 {
		t.Errorf("StatusCode = %d, want 529", perr.StatusCode)
	}
	if calls != 1 {
		t.Errorf("upstream called %d times, want 1", calls)
	}
}
