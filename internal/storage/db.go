package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	Pool *pgxpool.Pool
}

func NewDB(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &DB{Pool: pool}, nil
}

func (d *DB) Close() {
	if d != nil && d.Pool != nil {
		d.Pool.Close()
	}
}

// EnsureSchema creates the tables when they do not exist yet.
func (d *DB) EnsureSchema(ctx context.Context) error {
	if _, err := d.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
  document_id     TEXT PRIMARY KEY,
  original_name   TEXT NOT NULL,
  stored_filename TEXT NOT NULL,
  size_bytes      BIGINT NOT NULL,
  mime_type       TEXT NOT NULL,
  upload_time     TIMESTAMPTZ NOT NULL,
  project_name    TEXT NOT NULL DEFAULT '',
  organization    TEXT NOT NULL DEFAULT '',
  description     TEXT NOT NULL DEFAULT '',
  status          TEXT NOT NULL,
  extracted_text  TEXT,
  validation      JSONB,
  error           TEXT
);

CREATE TABLE IF NOT EXISTS reports (
  report_id    TEXT PRIMARY KEY,
  document_id  TEXT NOT NULL,
  project_name TEXT NOT NULL DEFAULT '',
  organization TEXT NOT NULL DEFAULT '',
  status       TEXT NOT NULL,
  progress     INT NOT NULL DEFAULT 0,
  created_at   TIMESTAMPTZ NOT NULL,
  completed_at TIMESTAMPTZ,
  content      JSONB,
  html_content TEXT,
  error        TEXT
);

CREATE INDEX IF NOT EXISTS reports_created_at_idx ON reports (created_at DESC);
`
