package stats

import (
	"context"

	"github.com/naekun/naebot/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_stats

// Repository is the persistent store of janken statistics keyed by user ID
type Repository interface {
	// GetOrCreate returns a copy of the user's record, or a zero record when the
	// user has never played. A zero record is not inserted.
	GetOrCreate(ctx context.Context, userID string) (*entities.StatsRecord, error)

	// Update applies fn to the user's record and persists the whole store.
	// Calls are serialized so concurrent rounds never lose an update.
	Update(ctx context.Context, userID string, fn func(*entities.StatsRecord)) (*entities.StatsRecord, error)

	// All returns every record in insertion order
	All(ctx context.Context) ([]*entities.UserStats, error)

	// Close closes any resources used by the repository
	Close() error
}
