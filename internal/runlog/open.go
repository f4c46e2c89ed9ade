package runlog

import (
	"context"
	"fmt"
	"log/slog"
)

// Backend names accepted by Open.
const (
	BackendJSONL    = "jsonl"
	BackendPostgres = "postgres"
	BackendNone     = "none"
)

// Open builds the store named by backend. dsn is the PostgreSQL connection
// string for BackendPostgres and an optional directory for BackendJSONL.
func Open(ctx context.Context, backend, dsn string, logger *slog.Logger) (Store, error) {
	switch backend {
	case BackendJSONL, "":
		return NewJSONLStore(dsn, logger)
	case BackendPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("run log: postgres backend needs a dsn")
		}
		return NewPostgresStore(ctx, dsn)
	case BackendNone:
		return NopStore{}, nil
	}
	return nil, fmt.Errorf("run log: unknown backend %q", backend)
}
