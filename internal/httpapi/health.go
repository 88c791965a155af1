package httpapi

import (
	"context"
	"net/http"
	"time"
)

const backendCheckTimeout = 2 * time.Second

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Server is running",
	})
}

type readyBody struct {
	Status    string            `json:"status"`
	Providers map[string]string `json:"providers,omitempty"`
	Backends  map[string]string `json:"backends,omitempty"`
}

// handleReady reports ready once the curriculum is loaded and an AI
// provider is registered.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	body := readyBody{
		Status:    "ready",
		Providers: s.checkProviders(r.Context()),
		Backends:  s.checkBackends(r.Context()),
	}

	if !s.cfg.Curriculum.Loaded() || s.cfg.AI == nil || !s.cfg.AI.HasProvider() {
		body.Status = "not ready"
		writeJSON(w, http.StatusServiceUnavailable, body)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// checkProviders reports each AI provider's health. Failing providers do
// not gate readiness; the router falls back past them.
func (s *Server) checkProviders(ctx context.Context) map[string]string {
	ph, ok := s.cfg.AI.(ProviderHealth)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, backendCheckTimeout)
	defer cancel()
	return describe(ph.HealthCheck(ctx))
}

func (s *Server) checkBackends(ctx context.Context) map[string]string {
	if len(s.cfg.Backends) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, backendCheckTimeout)
	defer cancel()

	results := make(map[string]error, len(s.cfg.Backends))
	for name, b := range s.cfg.Backends {
		results[name] = b.HealthCheck(ctx)
	}
	return describe(results)
}

func describe(results map[string]error) map[string]string {
	if len(results) == 0 {
		return nil
	}
	out := make(map[string]string, len(results))
	for name, err := range results {
		if err != nil {
			out[name] = err.Error()
			continue
		}
		out[name] = "ok"
	}
	return out
}

func (s *Server) handleCurriculum(w http.ResponseWriter, _ *http.Request) {
	if !s.cfg.Curriculum.Loaded() {
		writeError(w, http.StatusServiceUnavailable, "المنهاج غير متوفر حاليًا")
		return
	}
	writeJSON(w, http.StatusOK, s.cfg.Curriculum.Document())
}
