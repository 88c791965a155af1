package tutor

import (
	"errors"
	"fmt"

	"github.com/p-n-ai/pai-thanawi/internal/ai"
)

// MsgMissingFields is returned when the question or level is absent.
const MsgMissingFields = "يجب تحديد السؤال والمستوى الدراسي"

var (
	// ErrMissingFields means the question or the level was empty.
	ErrMissingFields = errors.New(MsgMissingFields)
	// ErrNotConfigured means no AI provider is available.
	ErrNotConfigured = errors.New("AI provider not configured")
)

// ValidationError carries the curriculum validator's message verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UpstreamError wraps a failed AI completion.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("AI completion failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// RateLimited reports whether any provider refused the call with 429.
func (e *UpstreamError) RateLimited() bool {
	return e.anyProvider((*ai.ProviderError).RateLimited)
}

// Unavailable reports whether any provider failed with a 5xx or a
// transport error.
func (e *UpstreamError) Unavailable() bool {
	return e.anyProvider((*ai.ProviderError).Unavailable)
}

// anyProvider applies match to every ProviderError in the chain, including
// each branch of the router's joined failures.
func (e *UpstreamError) anyProvider(match func(*ai.ProviderError) bool) bool {
	var walk func(error) bool
	walk = func(err error) bool {
		if err == nil {
			return false
		}
		if pe, ok := err.(*ai.ProviderError); ok && match(pe) {
			return true
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				if walk(inner) {
					return true
				}
			}
			return false
		case interface{ Unwrap() error }:
			return walk(u.Unwrap())
		}
		return false
	}
	return walk(e.Err)
}
