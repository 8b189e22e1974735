package history

import (
	"context"
	"time"

	"github.com/naekun/naebot/pkg/entities"
)

// Recorder stores finished janken rounds for later analysis
type Recorder interface {
	RecordRound(ctx context.Context, round *entities.Round) error
	// PruneBefore removes rounds played before cutoff and returns how many were removed
	PruneBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// Nop discards every round. Used when no history backend is configured.
type Nop struct{}

func (Nop) RecordRound(ctx context.Context, round *entities.Round) error {
	return nil
}

func (Nop) PruneBefore(ctx context.Context, cutoff time.Time) (int, error) {
	return 0, nil
}
