package slot

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/naekun/naebot/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		reels    [Reels]string
		expected Outcome
	}{
		{[Reels]string{"🐧", "🐧", "🐧"}, Jackpot},
		{[Reels]string{"🐧", "🐧", "🍒"}, PartialMatch},
		{[Reels]string{"🍒", "🐧", "🐧"}, PartialMatch},
		{[Reels]string{"🐧", "🍒", "🐧"}, PartialMatch},
		{[Reels]string{"🐧", "🍒", "🔔"}, Miss},
		{[Reels]string{"🦊", "🔔", "🍒"}, Miss},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Classify(tc.reels), "%v", tc.reels)
	}
}

func newTestMachine(seed int64) *Machine {
	return NewMachine(rand.New(rand.NewSource(seed)), DefaultRedraws)
}

func TestRevealStagesLockLeftToRight(t *testing.T) {
	m := newTestMachine(7)
	reveal, err := m.Spin()
	require.NoError(t, err)
	assert.Equal(t, Spinning, m.State())
	assert.Equal(t, Reels*DefaultRedraws, reveal.Frames())

	var frames []Frame
	for {
		frame, ok := reveal.Next()
		if !ok {
			break
		}
		frames = append(frames, frame)
		if !frame.Last {
			assert.Equal(t, Spinning, m.State())
		}
	}

	require.Len(t, frames, Reels*DefaultRedraws)
	final := frames[len(frames)-1]
	assert.True(t, final.Last)
	assert.Equal(t, Reels-1, final.Stage)

	for i, frame := range frames {
		assert.Equal(t, i/DefaultRedraws, frame.Stage)
		assert.Equal(t, i == len(frames)-1, frame.Last)
		for reel := 0; reel <= frame.Stage; reel++ {
			assert.Equal(t, final.Reels[reel], frame.Reels[reel], "frame %d reel %d should be locked", i, reel)
		}
		for _, symbol := range frame.Reels {
			assert.Contains(t, Symbols, symbol)
		}
	}

	assert.Equal(t, Settled, m.State())
	result, ok := m.Result()
	require.True(t, ok)
	assert.Equal(t, final.Reels, result.Reels)
	assert.Equal(t, Classify(final.Reels), result.Outcome)

	_, ok = reveal.Next()
	assert.False(t, ok, "reveal must not restart")
}

func TestSpinWhileSpinningIsRejected(t *testing.T) {
	m := newTestMachine(1)
	reveal, err := m.Spin()
	require.NoError(t, err)
	reveal.Next()

	_, err = m.Spin()

	assert.True(t, errors.Is(err, ErrAlreadySpinning))
	assert.True(t, types.IsBotError(err, types.ErrSpinInProgress))
	assert.Equal(t, Spinning, m.State())

	result := reveal.Finish()
	assert.Equal(t, Settled, m.State())
	assert.Equal(t, Classify(result.Reels), result.Outcome)
}

func TestSpinAfterSettleIsRejected(t *testing.T) {
	m := newTestMachine(1)
	reveal, err := m.Spin()
	require.NoError(t, err)
	first := reveal.Finish()

	_, err = m.Spin()

	assert.True(t, types.IsBotError(err, types.ErrSpinFinished))
	result, _ := m.Result()
	assert.Equal(t, first, result)
}

func TestResultUnavailableBeforeSettle(t *testing.T) {
	m := newTestMachine(1)
	_, ok := m.Result()
	assert.False(t, ok)
	assert.Equal(t, "idle", m.State().String())
}

func TestConcurrentSpinsOnlyOneWins(t *testing.T) {
	m := newTestMachine(3)

	const callers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		reveals  []*Reveal
		rejected int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reveal, err := m.Spin()
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				rejected++
				return
			}
			reveals = append(reveals, reveal)
		}()
	}
	wg.Wait()

	require.Len(t, reveals, 1)
	assert.Equal(t, callers-1, rejected)

	result := reveals[0].Finish()
	assert.Equal(t, Settled, m.State())
	assert.Contains(t, []Outcome{Jackpot, PartialMatch, Miss}, result.Outcome)
}

func TestSeparateMachinesSpinIndependently(t *testing.T) {
	a, b := newTestMachine(1), newTestMachine(2)

	ra, err := a.Spin()
	require.NoError(t, err)
	rb, err := b.Spin()
	require.NoError(t, err)

	ra.Finish()
	assert.Equal(t, Settled, a.State())
	assert.Equal(t, Spinning, b.State())
	rb.Finish()
	assert.Equal(t, Settled, b.State())
}
