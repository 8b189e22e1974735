package slot

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/naekun/naebot/internal/types"
)

// SpinButtonPrefix starts the custom ID of every spin button
const SpinButtonPrefix = "slot_spin:"

var ErrSessionExpired = types.NewBotError(types.ErrSessionExpired, "このスロットは時間切れなえ！もう一回 `/slot` してなえ！")

type session struct {
	machine *Machine
	expires time.Time
}

// Sessions tracks the machine behind every open slot message
type Sessions struct {
	mu       sync.Mutex
	machines map[string]*session
	ttl      time.Duration
	redraws  int
	seed     *rand.Rand
	now      func() time.Time
}

// NewSessions creates a registry whose machines expire ttl after opening
func NewSessions(ttl time.Duration, redraws int) *Sessions {
	return &Sessions{
		machines: make(map[string]*session),
		ttl:      ttl,
		redraws:  redraws,
		seed:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
}

// Open creates a fresh machine and returns its session ID
func (s *Sessions) Open() (string, *Machine) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	machine := NewMachine(rand.New(rand.NewSource(s.seed.Int63())), s.redraws)
	s.machines[id] = &session{
		machine: machine,
		expires: s.now().Add(s.ttl),
	}
	return id, machine
}

// Get returns the machine for id, or ErrSessionExpired when it is gone
func (s *Sessions) Get(id string) (*Machine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.machines[id]
	if !ok || !s.now().Before(sess.expires) {
		return nil, ErrSessionExpired
	}
	return sess.machine, nil
}

// Close forgets the session
func (s *Sessions) Close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.machines, id)
}

// Prune removes expired sessions and returns how many were removed
func (s *Sessions) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.machines {
		if !now.Before(sess.expires) {
			delete(s.machines, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of open sessions
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.machines)
}

// SpinButtonID builds the custom ID of the spin button for a session
func SpinButtonID(sessionID string) string {
	return SpinButtonPrefix + sessionID
}

// ParseSpinButtonID extracts the session ID from a spin button custom ID
func ParseSpinButtonID(customID string) (string, bool) {
	if !strings.HasPrefix(customID, SpinButtonPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(customID, SpinButtonPrefix)
	return id, id != ""
}
