package janken

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/naekun/naebot/internal/logging"
	"github.com/naekun/naebot/internal/types"
	"github.com/naekun/naebot/pkg/entities"
	"github.com/naekun/naebot/pkg/repositories/history"
	"github.com/naekun/naebot/pkg/repositories/stats"
)

// PlayResult is everything the janken command needs to render a round
type PlayResult struct {
	Round  *entities.Round
	Record entities.StatsRecord
	Quote  string
}

// Service plays janken rounds and keeps the players' statistics
type Service struct {
	repo    stats.Repository
	history history.Recorder
	log     *logging.Logger

	mu  sync.Mutex
	rng *rand.Rand

	now func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithRand replaces the random source, mostly for tests
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) {
		s.rng = rng
	}
}

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger replaces the logger used for history failures
func WithLogger(l *logging.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// NewService creates a janken service. A nil recorder disables round history.
func NewService(repo stats.Repository, recorder history.Recorder, opts ...Option) *Service {
	if recorder == nil {
		recorder = history.Nop{}
	}

	s := &Service{
		repo:    repo,
		history: recorder,
		log:     logging.Default,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Play draws the bot's hand, judges the round and records the result
func (s *Service) Play(ctx context.Context, userID string, hand entities.Hand) (*PlayResult, error) {
	if !hand.Valid() {
		return nil, types.NewBotError(types.ErrInvalidArgument, "ぐー・ちょき・ぱーから選ぶなえ！")
	}

	return s.play(ctx, userID, hand, s.randomHand())
}

func (s *Service) play(ctx context.Context, userID string, hand, botHand entities.Hand) (*PlayResult, error) {
	outcome := Judge(hand, botHand)

	record, err := s.repo.Update(ctx, userID, func(r *entities.StatsRecord) {
		*r = Apply(*r, outcome)
	})
	if err != nil {
		return nil, types.WrapError(types.ErrStorageError, "戦績を保存できなかったなえ…", err)
	}

	round := &entities.Round{
		ID:         uuid.NewString(),
		UserID:     userID,
		PlayerHand: hand,
		BotHand:    botHand,
		Outcome:    outcome,
		Streak:     record.Streak,
		PlayedAt:   s.now().UTC(),
	}

	// History is best effort; the stats are already saved
	if err := s.history.RecordRound(ctx, round); err != nil {
		s.log.Warn("Failed to record janken round %s for %s: %v", round.ID, userID, err)
	}

	return &PlayResult{
		Round:  round,
		Record: *record,
		Quote:  s.pick(quotesFor(outcome, record.Streak)),
	}, nil
}

// Stats returns the user's record, a zero record if they never played
func (s *Service) Stats(ctx context.Context, userID string) (*entities.StatsRecord, error) {
	record, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, types.WrapError(types.ErrStorageError, "戦績を読み込めなかったなえ…", err)
	}
	return record, nil
}

func (s *Service) randomHand() entities.Hand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return entities.Hands[s.rng.Intn(len(entities.Hands))]
}

func (s *Service) pick(options []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return options[s.rng.Intn(len(options))]
}
