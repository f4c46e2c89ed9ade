package runlog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps run records in a PostgreSQL table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to dsn and ensures the schema exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("run log: open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("run log: ping database: %w", err)
	}
	s := &PostgresStore{db: db}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("run log: init schema: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		finished_at TIMESTAMP WITH TIME ZONE NOT NULL,
		seed BIGINT NOT NULL,
		depth INTEGER NOT NULL,
		turns BIGINT NOT NULL,
		kills INTEGER NOT NULL,
		died BOOLEAN NOT NULL
	);`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Append inserts r; re-appending the same id is a no-op.
func (s *PostgresStore) Append(ctx context.Context, r Record) error {
	const query = `
	INSERT INTO runs (id, finished_at, seed, depth, turns, kills, died)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO NOTHING`
	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.Timestamp, r.Seed, r.Depth, int64(r.Turns), r.Kills, r.Died)
	if err != nil {
		return fmt.Errorf("run log: insert run %s: %w", r.ID, err)
	}
	return nil
}

// Summary aggregates every stored run.
func (s *PostgresStore) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(MAX(depth), 0) FROM runs`)
	if err := row.Scan(&sum.Runs, &sum.BestDepth); err != nil {
		return Summary{}, fmt.Errorf("run log: summarize: %w", err)
	}
	return sum, nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }
