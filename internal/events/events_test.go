package events_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/p-n-ai/pai-thanawi/internal/events"
)

func TestMemory_Log(t *testing.T) {
	logger := events.NewMemory()

	err := logger.Log(context.Background(), events.Event{
		Type:    events.TypeQuestionAsked,
		Client:  "abc",
		Level:   "1st",
		Subject: "الرياضيات",
		Data:    map[string]any{"question_len": 42},
	})
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	got := logger.Events()
	if len(got) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(got))
	}
	if got[0].Type != events.TypeQuestionAsked {
		t.Errorf("Type = %q, want %q", got[0].Type, events.TypeQuestionAsked)
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestMemory_RequiresType(t *testing.T) {
	if err := events.NewMemory().Log(context.Background(), events.Event{}); err == nil {
		t.Fatal("Log() should reject an event without type")
	}
}

func TestMemory_CountByType(t *testing.T) {
	logger := events.NewMemory()
	ctx := context.Background()
	now := time.Now().UTC()

	logger.Log(ctx, events.Event{Type: events.TypeQuestionAsked, CreatedAt: now.Add(-2 * time.Hour)})
	logger.Log(ctx, events.Event{Type: events.TypeQuestionAsked, CreatedAt: now})
	logger.Log(ctx, events.Event{Type: events.TypeQuestionsGenerated, CreatedAt: now})

	got, err := logger.CountByType(ctx, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountByType() error = %v", err)
	}
	if got[events.TypeQuestionAsked] != 1 || got[events.TypeQuestionsGenerated] != 1 {
		t.Errorf("CountByType() = %v, want one of each", got)
	}
}

func TestPostgres_NilDatabase(t *testing.T) {
	logger := events.NewPostgres(nil)

	if err := logger.Log(context.Background(), events.Event{Type: events.TypeQuestionAsked}); err == nil {
		t.Fatal("expected error for nil database")
	}
	if err := logger.EnsureSchema(context.Background()); err == nil {
		t.Fatal("expected error for nil database")
	}
}

func TestRecord_UsesContextClientAndSwallowsErrors(t *testing.T) {
	logger := events.NewMemory()
	ctx := events.WithClient(context.Background(), "fp-1")

	events.Record(ctx, logger, events.Event{Type: events.TypeQuestionsGenerated})
	events.Record(ctx, failingLogger{}, events.Event{Type: events.TypeQuestionsGenerated})
	events.Record(ctx, nil, events.Event{Type: events.TypeQuestionsGenerated})

	got := logger.Events()
	if len(got) != 1 || got[0].Client != "fp-1" {
		t.Fatalf("events = %+v, want one event from fp-1", got)
	}
}

func TestFingerprint(t *testing.T) {
	a := events.Fingerprint("192.0.2.10:51234")
	b := events.Fingerprint("192.0.2.10:40000")
	c := events.Fingerprint("192.0.2.11:51234")

	if a != b {
		t.Error("fingerprint should ignore the port")
	}
	if a == c {
		t.Error("different hosts should have different fingerprints")
	}
	if len(a) != 64 {
		t.Errorf("len = %d, want 64 hex chars", len(a))
	}
	if strings.Contains(a, "192.0.2.10") {
		t.Error("fingerprint leaks the address")
	}
	if events.Fingerprint("[2001:db8::1]:443") != events.Fingerprint("2001:db8::1") {
		t.Error("IPv6 with and without port should match")
	}
}

type failingLogger struct{}

func (failingLogger) Log(context.Context, events.Event) error { return errors.New("down") }
