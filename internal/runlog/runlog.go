// Package runlog persists per-run statistics and the cross-run summary.
package runlog

import (
	"context"
	"time"
)

// Record describes one finished run.
type Record struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Seed      int64     `json:"seed"`
	Depth     int       `json:"depth"`
	Turns     uint64    `json:"turns"`
	Kills     int       `json:"kills"`
	Died      bool      `json:"died"`
}

// Summary aggregates every recorded run.
type Summary struct {
	Runs      int `json:"runs"`
	BestDepth int `json:"best_depth"`
}

// Add folds r into the summary.
func (s Summary) Add(r Record) Summary {
	s.Runs++
	s.BestDepth = max(s.BestDepth, r.Depth)
	return s
}

// Store persists run records.
type Store interface {
	Append(ctx context.Context, r Record) error
	Summary(ctx context.Context) (Summary, error)
	Close() error
}

// NopStore discards records.
type NopStore struct{}

func (NopStore) Append(context.Context, Record) error { return nil }
func (NopStore) Summary(context.Context) (Summary, error) { return Summary{}, nil }
func (NopStore) Close() error { return nil }
