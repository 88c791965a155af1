package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/p-n-ai/pai-thanawi/internal/platform/database"
)

const dbTimeout = 3 * time.Second

var schema = []string{
	`CREATE TABLE IF NOT EXISTS usage_events (
		id          BIGSERIAL PRIMARY KEY,
		event_type  TEXT NOT NULL,
		client      TEXT NOT NULL DEFAULT '',
		level       TEXT NOT NULL DEFAULT '',
		branch      TEXT NOT NULL DEFAULT '',
		subject     TEXT NOT NULL DEFAULT '',
		data        JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS usage_events_created_at_idx ON usage_events (created_at)`,
	`CREATE INDEX IF NOT EXISTS usage_events_type_idx ON usage_events (event_type)`,
}

// Postgres inserts events into the usage_events table.
type Postgres struct {
	db *database.DB
}

func NewPostgres(db *database.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the usage_events table when missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if p == nil || p.db == nil {
		return fmt.Errorf("event logger database is nil")
	}
	return p.db.EnsureSchema(ctx, schema...)
}

func (p *Postgres) Log(ctx context.Context, event Event) error {
	if p == nil || p.db == nil {
		return fmt.Errorf("event logger database is nil")
	}
	if event.Type == "" {
		return fmt.Errorf("event type is required")
	}

	payload := event.Data
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	// Detached from the request so a finished response does not cancel
	// the insert.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dbTimeout)
	defer cancel()

	_, err = p.db.Pool.Exec(ctx,
		`INSERT INTO usage_events (event_type, client, level, branch, subject, data, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7)`,
		event.Type,
		event.Client,
		event.Level,
		event.Branch,
		event.Subject,
		string(data),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	slog.Debug("event logged", "type", event.Type, "subject", event.Subject)
	return nil
}

// CountByType tallies events created at or after since.
func (p *Postgres) CountByType(ctx context.Context, since time.Time) (map[string]int64, error) {
	if p == nil || p.db == nil {
		return nil, fmt.Errorf("event logger database is nil")
	}

	rows, err := p.db.Pool.Query(ctx,
		`SELECT event_type, count(*) FROM usage_events WHERE created_at >= $1 GROUP BY event_type`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var typ string
		var n int64
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, fmt.Errorf("scan event count: %w", err)
		}
		out[typ] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event counts: %w", err)
	}
	return out, nil
}
