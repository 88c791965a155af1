// Package events records anonymous usage events for the ask and practice
// endpoints.
package events

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Event types.
const (
	TypeQuestionAsked      = "question_asked"
	TypeQuestionsGenerated = "questions_generated"
)

// Event is a single usage record. Client is a fingerprint, never an address.
type Event struct {
	Type      string
	Client    string
	Level     string
	Branch    string
	Subject   string
	Data      map[string]any
	CreatedAt time.Time
}

// Logger persists events.
type Logger interface {
	Log(ctx context.Context, event Event) error
}

// Record logs event with l and reports failures only as warnings. The
// client fingerprint stored in ctx is applied when event has none.
func Record(ctx context.Context, l Logger, event Event) {
	if l == nil {
		return
	}
	if event.Client == "" {
		event.Client = ClientFrom(ctx)
	}
	if err := l.Log(ctx, event); err != nil {
		slog.Warn("usage event not recorded", "type", event.Type, "error", err)
	}
}

// Nop ignores all events.
type Nop struct{}

func (Nop) Log(context.Context, Event) error { return nil }

// Memory stores events in memory for tests and the dev server.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

func NewMemory() *Memory {
	return &Memory{events: []Event{}}
}

func (m *Memory) Log(_ context.Context, event Event) error {
	if event.Type == "" {
		return fmt.Errorf("event type is required")
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
	return nil
}

// Events returns a copy of everything logged so far.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event{}, m.events...)
}

// CountByType tallies events created at or after since.
func (m *Memory) CountByType(_ context.Context, since time.Time) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64)
	for _, e := range m.events {
		if !e.CreatedAt.Before(since) {
			out[e.Type]++
		}
	}
	return out, nil
}

// Fingerprint hashes a remote address (host or host:port) with blake2b-256.
// The port is dropped so one client keeps one fingerprint across
// connections.
func Fingerprint(remoteAddr string) string {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	sum := blake2b.Sum256([]byte(host))
	return hex.EncodeToString(sum[:])
}

type clientKey struct{}

// WithClient stores a client fingerprint in ctx.
func WithClient(ctx context.Context, fingerprint string) context.Context {
	return context.WithValue(ctx, clientKey{}, fingerprint)
}

// ClientFrom returns the fingerprint stored by WithClient, or "".
func ClientFrom(ctx context.Context) string {
	fp, _ := ctx.Value(clientKey{}).(string)
	return fp
}
