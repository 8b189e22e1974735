package stats

import (
	"context"
	"fmt"

	"github.com/naekun/naebot/pkg/entities"
)

// Storage backends
const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Open returns the repository for backend. location is the file path for
// json and sqlite, and the connection URL for postgres.
func Open(ctx context.Context, backend, location string) (Repository, error) {
	switch backend {
	case BackendJSON:
		return NewFileRepository(location)
	case BackendSQLite:
		return NewSQLiteRepository(location)
	case BackendPostgres:
		return NewPostgresRepository(ctx, location)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// Copy writes every record of src into dst, keeping src's order. It returns
// the number of records copied.
func Copy(ctx context.Context, dst, src Repository) (int, error) {
	all, err := src.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read source: %w", err)
	}

	for n, entry := range all {
		record := entry.Record
		if _, err := dst.Update(ctx, entry.UserID, func(r *entities.StatsRecord) { *r = record }); err != nil {
			return n, fmt.Errorf("failed to copy %s: %w", entry.UserID, err)
		}
	}
	return len(all), nil
}
