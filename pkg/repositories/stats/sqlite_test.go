package stats

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/naekun/naebot/pkg/entities"
	"github.com/stretchr/testify/suite"
)

type SQLiteRepositoryTestSuite struct {
	suite.Suite
	ctx    context.Context
	dbPath string
	repo   *SQLiteRepository
}

func TestSQLiteRepositorySuite(t *testing.T) {
	suite.Run(t, new(SQLiteRepositoryTestSuite))
}

func (s *SQLiteRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.dbPath = filepath.Join(s.T().TempDir(), "nested", "naebot.db")

	repo, err := NewSQLiteRepository(s.dbPath)
	s.Require().NoError(err)
	s.repo = repo
}

func (s *SQLiteRepositoryTestSuite) TearDownTest() {
	s.repo.Close()
}

func (s *SQLiteRepositoryTestSuite) TestGetOrCreateUnknownUser() {
	record, err := s.repo.GetOrCreate(s.ctx, "nobody")

	s.Require().NoError(err)
	s.Equal(entities.StatsRecord{}, *record)
}

func (s *SQLiteRepositoryTestSuite) TestUpdateInsertsThenUpdates() {
	_, err := s.repo.Update(s.ctx, "123", func(r *entities.StatsRecord) {
		r.Win = 1
		r.Streak = 1
		r.MaxStreak = 1
	})
	s.Require().NoError(err)

	updated, err := s.repo.Update(s.ctx, "123", func(r *entities.StatsRecord) {
		r.Lose++
		r.Streak = 0
		r.LoseStreak = 1
		r.MaxLoseStreak = 1
	})
	s.Require().NoError(err)

	expected := entities.StatsRecord{Win: 1, Lose: 1, MaxStreak: 1, LoseStreak: 1, MaxLoseStreak: 1}
	s.Equal(expected, *updated)

	stored, err := s.repo.GetOrCreate(s.ctx, "123")
	s.Require().NoError(err)
	s.Equal(expected, *stored)
}

func (s *SQLiteRepositoryTestSuite) TestDataSurvivesReopen() {
	_, err := s.repo.Update(s.ctx, "123", func(r *entities.StatsRecord) { r.Draw = 4 })
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Close())

	reopened, err := NewSQLiteRepository(s.dbPath)
	s.Require().NoError(err)
	s.repo = reopened

	record, err := reopened.GetOrCreate(s.ctx, "123")
	s.Require().NoError(err)
	s.Equal(4, record.Draw)
}

func (s *SQLiteRepositoryTestSuite) TestAllKeepsInsertionOrder() {
	for _, id := range []string{"300", "100", "200"} {
		_, err := s.repo.Update(s.ctx, id, func(r *entities.StatsRecord) { r.Win++ })
		s.Require().NoError(err)
	}
	_, err := s.repo.Update(s.ctx, "300", func(r *entities.StatsRecord) { r.Win++ })
	s.Require().NoError(err)

	all, err := s.repo.All(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("300", all[0].UserID)
	s.Equal(2, all[0].Record.Win)
	s.Equal("100", all[1].UserID)
	s.Equal("200", all[2].UserID)
}

func (s *SQLiteRepositoryTestSuite) TestConcurrentUpdatesAreNotLost() {
	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.repo.Update(s.ctx, "123", func(r *entities.StatsRecord) { r.Win++ })
			s.NoError(err)
		}()
	}
	wg.Wait()

	record, err := s.repo.GetOrCreate(s.ctx, "123")
	s.Require().NoError(err)
	s.Equal(workers, record.Win)
}
