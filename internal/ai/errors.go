package ai

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoProviders is returned by a Router with nothing registered.
var ErrNoProviders = errors.New("no AI provider configured")

// ProviderError wraps an SDK failure with the upstream HTTP status, when
// one is known.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// RateLimited reports whether the upstream rejected the call with 429.
func (e *ProviderError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// Unavailable reports a 5xx or transport failure.
func (e *ProviderError) Unavailable() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}
