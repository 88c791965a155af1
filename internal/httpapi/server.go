// Package httpapi exposes the tutor and practice services over HTTP.
package httpapi

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/p-n-ai/pai-thanawi/internal/curriculum"
	"github.com/p-n-ai/pai-thanawi/internal/practice"
	"github.com/p-n-ai/pai-thanawi/internal/ratelimit"
	"github.com/p-n-ai/pai-thanawi/internal/tutor"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// Asker answers student questions.
type Asker interface {
	Answer(ctx context.Context, req tutor.AskRequest) (tutor.Answer, error)
}

// Generator builds practice question sets.
type Generator interface {
	Generate(ctx context.Context, req practice.GenerateRequest) (practice.Set, error)
}

// ProviderStatus reports whether any AI provider is registered.
type ProviderStatus interface {
	HasProvider() bool
}

// ProviderHealth checks every registered AI provider. A ProviderStatus
// that also implements it has its results reported by /readyz.
type ProviderHealth interface {
	HealthCheck(ctx context.Context) map[string]error
}

// HealthChecker is an optional backend checked by /readyz.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Config holds the server's collaborators.
type Config struct {
	Tutor      Asker
	Practice   Generator
	Curriculum *curriculum.Store
	AI         ProviderStatus     // optional
	Limiter    *ratelimit.Limiter // optional
	// Backends are reported by /readyz without affecting readiness, since
	// the service degrades without them.
	Backends map[string]HealthChecker

	PublicDir      string
	AllowedOrigins []string
	// ClientIPHeader names a header set by a trusted reverse proxy, such as
	// X-Forwarded-For. Its first hop identifies the client. Empty means
	// the connection's remote address is used.
	ClientIPHeader string
	// Development exposes upstream error details to clients.
	Development bool
}

// Server is the HTTP front of the application.
type Server struct {
	cfg     Config
	handler http.Handler
}

// New builds the router and middleware chain.
func New(cfg Config) *Server {
	if cfg.Curriculum == nil {
		cfg.Curriculum = curriculum.Empty()
	}
	s := &Server{cfg: cfg}
	s.handler = chain(s.routes(),
		withRequestID,
		withAccessLog,
		withRecover,
		withCORS(cfg.AllowedOrigins),
		withClient(cfg.ClientIPHeader),
	)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("POST /api/ask", s.limit("ask", http.HandlerFunc(s.handleAsk)))
	mux.Handle("POST /api/generate-questions", s.limit("generate", http.HandlerFunc(s.handleGenerate)))
	mux.Handle("POST /api/generate-questions/export", s.limit("generate", http.HandlerFunc(s.handleExport)))

	mux.HandleFunc("GET /api/curriculum", s.handleCurriculum)
	mux.HandleFunc("GET /curriculum.json", s.handleCurriculum)
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	if dir := s.cfg.PublicDir; dir != "" {
		mux.HandleFunc("GET /questions", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, filepath.Join(dir, "questions.html"))
		})
		mux.Handle("GET /", http.FileServer(http.Dir(dir)))
	}

	return mux
}
