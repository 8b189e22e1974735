package slot

import (
	"math/rand"
	"sync"

	"github.com/naekun/naebot/internal/types"
)

// Reels is the number of reel positions
const Reels = 3

// DefaultRedraws is how many times the unlocked reels are redrawn per stage
const DefaultRedraws = 10

// Symbols is the reel alphabet
var Symbols = []string{"🐧", "🍒", "🔔", "🦊"}

var (
	ErrAlreadySpinning = types.NewBotError(types.ErrSpinInProgress, "もう回ってるなえ！少しまってなえ！")
	ErrSettled         = types.NewBotError(types.ErrSpinFinished, "このスロットはもう止まったなえ！もう一回 `/slot` してなえ！")
)

// State is the lifecycle of a machine
type State int

const (
	Idle State = iota
	Spinning
	Settled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Spinning:
		return "spinning"
	case Settled:
		return "settled"
	}
	return "unknown"
}

// Outcome classifies a final set of reels
type Outcome string

const (
	Jackpot      Outcome = "jackpot"
	PartialMatch Outcome = "partial_match"
	Miss         Outcome = "miss"
)

// Classify returns Jackpot when all reels match, PartialMatch when exactly two do, Miss otherwise
func Classify(reels [Reels]string) Outcome {
	switch {
	case reels[0] == reels[1] && reels[1] == reels[2]:
		return Jackpot
	case reels[0] == reels[1] || reels[1] == reels[2] || reels[0] == reels[2]:
		return PartialMatch
	default:
		return Miss
	}
}

// Result is the settled state of the reels
type Result struct {
	Reels   [Reels]string
	Outcome Outcome
}

// Machine is a single slot machine. It spins at most once.
type Machine struct {
	mu      sync.Mutex
	state   State
	result  *Result
	rng     *rand.Rand
	redraws int
}

// NewMachine creates an idle machine. The machine owns rng from here on.
func NewMachine(rng *rand.Rand, redraws int) *Machine {
	if redraws <= 0 {
		redraws = DefaultRedraws
	}
	return &Machine{
		state:   Idle,
		rng:     rng,
		redraws: redraws,
	}
}

// State returns the current state
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Result returns the final reels once the machine has settled
func (m *Machine) Result() (Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.result == nil {
		return Result{}, false
	}
	return *m.result, true
}

// Spin starts the reveal. A machine that is already spinning or has settled
// rejects the call and keeps its state.
func (m *Machine) Spin() (*Reveal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case Spinning:
		return nil, ErrAlreadySpinning
	case Settled:
		return nil, ErrSettled
	}

	m.state = Spinning
	return &Reveal{machine: m, total: Reels * m.redraws}, nil
}

func (m *Machine) settle(reels [Reels]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.result = &Result{Reels: reels, Outcome: Classify(reels)}
	m.state = Settled
}

func (m *Machine) draw() string {
	return Symbols[m.rng.Intn(len(Symbols))]
}

// Frame is one render of the reels during a reveal
type Frame struct {
	Reels [Reels]string
	// Stage is the index of the rightmost locked reel
	Stage int
	// Last is set on the final frame, when every reel is locked
	Last bool
}

// Reveal yields the frames of one spin, left to right: in stage k reels 0..k
// hold their final symbol and the rest are redrawn on every frame. It is not
// safe for concurrent use and cannot be restarted.
type Reveal struct {
	machine *Machine
	final   [Reels]string
	locked  int
	emitted int
	total   int
}

// Next returns the next frame, or false once the reveal is exhausted.
// Returning the last frame settles the machine.
func (r *Reveal) Next() (Frame, bool) {
	if r.emitted >= r.total {
		return Frame{}, false
	}

	stage := r.emitted / r.machine.redraws
	for r.locked <= stage {
		r.final[r.locked] = r.machine.draw()
		r.locked++
	}

	frame := Frame{Stage: stage}
	for i := 0; i < Reels; i++ {
		if i <= stage {
			frame.Reels[i] = r.final[i]
		} else {
			frame.Reels[i] = r.machine.draw()
		}
	}

	r.emitted++
	if r.emitted == r.total {
		frame.Last = true
		r.machine.settle(r.final)
	}

	return frame, true
}

// Finish consumes the remaining frames and returns the result
func (r *Reveal) Finish() Result {
	for {
		if _, ok := r.Next(); !ok {
			break
		}
	}
	result, _ := r.machine.Result()
	return result
}

// Frames returns the total number of frames in the reveal
func (r *Reveal) Frames() int {
	return r.total
}
