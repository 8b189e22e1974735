package slot

import (
	"testing"
	"time"

	"github.com/naekun/naebot/internal/types"
	"github.com/stretchr/testify/suite"
)

type SessionsTestSuite struct {
	suite.Suite
	now      time.Time
	sessions *Sessions
}

func TestSessionsSuite(t *testing.T) {
	suite.Run(t, new(SessionsTestSuite))
}

func (s *SessionsTestSuite) SetupTest() {
	s.now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.sessions = NewSessions(time.Minute, 2)
	s.sessions.now = func() time.Time { return s.now }
}

func (s *SessionsTestSuite) TestOpenAndGet() {
	id, machine := s.sessions.Open()

	got, err := s.sessions.Get(id)

	s.Require().NoError(err)
	s.Same(machine, got)
	s.Equal(Idle, got.State())
	s.Equal(1, s.sessions.Len())
}

func (s *SessionsTestSuite) TestEachOpenIsFresh() {
	idA, a := s.sessions.Open()
	idB, b := s.sessions.Open()

	s.NotEqual(idA, idB)
	s.NotSame(a, b)
}

func (s *SessionsTestSuite) TestRedrawsArePassedToMachines() {
	_, machine := s.sessions.Open()

	reveal, err := machine.Spin()

	s.Require().NoError(err)
	s.Equal(Reels*2, reveal.Frames())
}

func (s *SessionsTestSuite) TestUnknownSessionIsExpired() {
	_, err := s.sessions.Get("missing")

	s.True(types.IsBotError(err, types.ErrSessionExpired))
}

func (s *SessionsTestSuite) TestExpiry() {
	oldID, _ := s.sessions.Open()
	s.now = s.now.Add(30 * time.Second)
	newID, _ := s.sessions.Open()
	s.now = s.now.Add(30 * time.Second)

	_, err := s.sessions.Get(oldID)
	s.True(types.IsBotError(err, types.ErrSessionExpired))
	_, err = s.sessions.Get(newID)
	s.NoError(err)

	s.Equal(1, s.sessions.Prune())
	s.Equal(1, s.sessions.Len())
}

func (s *SessionsTestSuite) TestClose() {
	id, _ := s.sessions.Open()

	s.sessions.Close(id)

	_, err := s.sessions.Get(id)
	s.Error(err)
	s.Equal(0, s.sessions.Len())
}

func (s *SessionsTestSuite) TestSpinButtonID() {
	id, _ := s.sessions.Open()

	customID := SpinButtonID(id)
	parsed, ok := ParseSpinButtonID(customID)

	s.True(ok)
	s.Equal(id, parsed)

	_, ok = ParseSpinButtonID("janken_again")
	s.False(ok)
	_, ok = ParseSpinButtonID(SpinButtonPrefix)
	s.False(ok)
}
