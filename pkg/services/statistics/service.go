package statistics

import (
	"context"
	"time"

	"github.com/naekun/naebot/internal/logging"
	"github.com/naekun/naebot/internal/types"
	"github.com/naekun/naebot/pkg/entities"
	"github.com/naekun/naebot/pkg/repositories/stats"
)

// Service builds janken leaderboards from the stats repository
type Service struct {
	repository stats.Repository
	directory  UserDirectory
	names      *NameCache
}

// NewService creates a new statistics service. names may be nil to disable caching.
func NewService(repository stats.Repository, directory UserDirectory, names *NameCache) *Service {
	return &Service{
		repository: repository,
		directory:  directory,
		names:      names,
	}
}

// RankEntry is one resolved row of a leaderboard
type RankEntry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Value  int    `json:"value"`
}

// Leaderboard is the top of one ranked field
type Leaderboard struct {
	Field   entities.StatField `json:"field"`
	Entries []*RankEntry       `json:"entries"`
	// Candidates counts the ranked users before name resolution
	Candidates  int       `json:"candidates"`
	LastUpdated time.Time `json:"last_updated"`
}

// Leaderboard returns the top n users for field. Users whose name cannot be
// resolved are left out; the ranks of the others do not move.
func (s *Service) Leaderboard(ctx context.Context, field entities.StatField, n int) (*Leaderboard, error) {
	all, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return s.build(ctx, all, field, n), nil
}

// Leaderboards returns the top n for every rankable field from a single read
func (s *Service) Leaderboards(ctx context.Context, n int) ([]*Leaderboard, error) {
	all, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	boards := make([]*Leaderboard, 0, len(entities.RankableFields))
	for _, field := range entities.RankableFields {
		boards = append(boards, s.build(ctx, all, field, n))
	}
	return boards, nil
}

// PurgeNames drops expired cached names
func (s *Service) PurgeNames() int {
	if s.names == nil {
		return 0
	}
	return s.names.Purge()
}

func (s *Service) all(ctx context.Context) ([]*entities.UserStats, error) {
	all, err := s.repository.All(ctx)
	if err != nil {
		return nil, types.WrapError(types.ErrStorageError, "戦績を読み込めなかったなえ…", err)
	}
	return all, nil
}

func (s *Service) build(ctx context.Context, all []*entities.UserStats, field entities.StatField, n int) *Leaderboard {
	board := &Leaderboard{
		Field:       field,
		Entries:     []*RankEntry{},
		LastUpdated: time.Now(),
	}

	top := TopN(all, field, n)
	board.Candidates = len(top)

	for i, ranked := range top {
		name, err := s.lookup(ctx, ranked.UserID)
		if err != nil {
			logging.Default.Debug("Skipping %s in %s ranking: %v", ranked.UserID, field, err)
			continue
		}
		board.Entries = append(board.Entries, &RankEntry{
			Rank:   i + 1,
			UserID: ranked.UserID,
			Name:   name,
			Value:  ranked.Value,
		})
	}

	return board
}

func (s *Service) lookup(ctx context.Context, userID string) (string, error) {
	if s.names != nil {
		if name, ok := s.names.Get(userID); ok {
			return name, nil
		}
	}

	name, err := s.directory.LookupUserName(ctx, userID)
	if err != nil {
		return "", err
	}

	if s.names != nil {
		s.names.Put(userID, name)
	}
	return name, nil
}
