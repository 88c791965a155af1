package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/p-n-ai/pai-thanawi/internal/ai"
	"github.com/p-n-ai/pai-thanawi/internal/curriculum"
	"github.com/p-n-ai/pai-thanawi/internal/events"
	"github.com/p-n-ai/pai-thanawi/internal/httpapi"
	"github.com/p-n-ai/pai-thanawi/internal/platform/cache"
	"github.com/p-n-ai/pai-thanawi/internal/platform/config"
	"github.com/p-n-ai/pai-thanawi/internal/platform/database"
	"github.com/p-n-ai/pai-thanawi/internal/platform/logging"
	"github.com/p-n-ai/pai-thanawi/internal/practice"
	"github.com/p-n-ai/pai-thanawi/internal/questionbank"
	"github.com/p-n-ai/pai-thanawi/internal/ratelimit"
	"github.com/p-n-ai/pai-thanawi/internal/tutor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logging.New(os.Stdout, cfg.Log))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           a.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Answers can take up to the AI timeout.
		WriteTimeout: cfg.AI.Timeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// app owns the long-lived resources behind the HTTP handler.
type app struct {
	handler  http.Handler
	backends map[string]httpapi.HealthChecker
	closers  []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// newApp wires stores, providers and optional backends. Data files that
// fail to load leave empty stores behind; a missing AI provider is fatal
// only when required.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{backends: make(map[string]httpapi.HealthChecker)}

	store, err := curriculum.Load(cfg.Data.CurriculumPath)
	if err != nil {
		slog.Error("curriculum unavailable, validation will reject every request", "error", err)
		store = curriculum.Empty()
	}

	bank, _, err := questionbank.Load(cfg.Data.QuestionBankPath)
	if err != nil {
		slog.Error("question bank unavailable, generated sets will be empty", "error", err)
		bank = questionbank.Empty()
	}

	router, err := ai.NewRouterFromConfig(ctx, cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("creating AI router: %w", err)
	}
	if !router.HasProvider() {
		if cfg.AI.Required {
			return nil, errors.New("no AI provider configured")
		}
		slog.Warn("no AI provider configured, /api/ask will fail")
	}

	var eventLog events.Logger = events.Nop{}
	if cfg.Database.URL != "" {
		db, err := database.New(ctx, cfg.Database)
		if err != nil {
			slog.Warn("database unavailable, usage events disabled", "error", err)
		} else {
			pg := events.NewPostgres(db)
			if err := pg.EnsureSchema(ctx); err != nil {
				db.Close()
				slog.Warn("usage events schema failed, usage events disabled", "error", err)
			} else {
				a.closers = append(a.closers, db.Close)
				a.backends["database"] = db
				eventLog = pg
				slog.Info("usage events enabled")
			}
		}
	}

	var limiter *ratelimit.Limiter
	if cfg.Cache.URL != "" {
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			slog.Warn("cache unavailable, rate limiting disabled", "error", err)
		} else {
			a.closers = append(a.closers, func() { c.Close() })
			a.backends["cache"] = c
			limiter = ratelimit.New(c, cfg.RateLimit.PerMinute, time.Minute)
		}
	}
	slog.Info("rate limiting", "limit", limiter.String())

	a.handler = httpapi.New(httpapi.Config{
		Tutor: tutor.NewService(tutor.Config{
			Curriculum: store,
			AI:         router,
			Events:     eventLog,
			Timeout:    cfg.AI.Timeout,
		}),
		Practice: practice.NewService(practice.Config{
			Curriculum: store,
			Bank:       bank,
			Events:     eventLog,
		}),
		Curriculum:     store,
		AI:             router,
		Limiter:        limiter,
		Backends:       a.backends,
		PublicDir:      cfg.Server.PublicDir,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		ClientIPHeader: cfg.Server.TrustedProxyHeader,
		Development:    cfg.IsDevelopment(),
	})

	return a, nil
}
