package pomodoro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartsPausedInFocus(t *testing.T) {
	s := New(DefaultSettings())
	assert.Equal(t, Focus, s.Phase)
	assert.False(t, s.Running)
	assert.Equal(t, 25*60, s.Remaining)
	assert.Zero(t, s.Sessions)
}

func TestStartPauseToggleKeepPhase(t *testing.T) {
	s := New(DefaultSettings())
	s = s.Start()
	assert.True(t, s.Running)
	assert.Equal(t, Focus, s.Phase)

	s = s.Pause()
	assert.False(t, s.Running)

	s = s.Toggle()
	assert.True(t, s.Running)
	s = s.Toggle()
	assert.False(t, s.Running)
	assert.Equal(t, Focus, s.Phase)
}

func TestTickWhilePausedIsNoop(t *testing.T) {
	s := New(DefaultSettings())
	next, ev := s.Tick()
	assert.Equal(t, s, next)
	assert.Equal(t, NoEvent, ev)
}

func TestTickDecrements(t *testing.T) {
	s := New(DefaultSettings()).Start()
	s, ev := s.Tick()
	assert.Equal(t, NoEvent, ev)
	assert.Equal(t, 25*60-1, s.Remaining)
	assert.Equal(t, 1, s.Elapsed())
}

func TestFullFocusPhaseCompletesOnce(t *testing.T) {
	s := New(Settings{WorkDuration: 25, BreakDuration: 5}).Start()

	completions := 0
	for i := 0; i < 1500; i++ {
		var ev Event
		s, ev = s.Tick()
		if ev == FocusCompleted {
			completions++
			require.Equal(t, 1499, i, "completion should fire on the last tick")
		}
		require.NotEqual(t, BreakCompleted, ev)
	}

	assert.Equal(t, 1, completions)
	assert.Equal(t, Break, s.Phase)
	assert.Equal(t, 5*60, s.Remaining)
	assert.Equal(t, 1, s.Sessions)
	assert.False(t, s.Running, "timer stops after a phase completes")
}

func TestBreakCompletionDoesNotCountSession(t *testing.T) {
	s := State{Settings: Settings{WorkDuration: 1, BreakDuration: 1}, Phase: Break, Remaining: 1, Running: true, Sessions: 3}
	s, ev := s.Tick()
	assert.Equal(t, BreakCompleted, ev)
	assert.Equal(t, Focus, s.Phase)
	assert.Equal(t, 60, s.Remaining)
	assert.Equal(t, 3, s.Sessions)
	assert.False(t, s.Running)
}

func TestReset(t *testing.T) {
	s := New(DefaultSettings()).Start()
	for i := 0; i < 10; i++ {
		s, _ = s.Tick()
	}
	s = s.Reset()
	assert.Equal(t, 25*60, s.Remaining)
	assert.False(t, s.Running)
	assert.Equal(t, Focus, s.Phase)

	s = s.Skip().Start()
	s, _ = s.Tick()
	s = s.Reset()
	assert.Equal(t, Break, s.Phase)
	assert.Equal(t, 5*60, s.Remaining)
}

func TestSkip(t *testing.T) {
	s := New(DefaultSettings()).Start()
	s, _ = s.Tick()

	s = s.Skip()
	assert.Equal(t, Break, s.Phase)
	assert.Equal(t, 5*60, s.Remaining)
	assert.Zero(t, s.Sessions)
	assert.False(t, s.Running)

	s = s.Skip()
	assert.Equal(t, Focus, s.Phase)
	assert.Equal(t, 25*60, s.Remaining)
	assert.Zero(t, s.Sessions)
}

func TestWithSettings(t *testing.T) {
	s := New(DefaultSettings()).Start()
	s, _ = s.Tick()
	s = s.WithSettings(Settings{WorkDuration: 50, BreakDuration: 10})
	assert.False(t, s.Running)
	assert.Equal(t, 50*60, s.Remaining)
	assert.Equal(t, 10*60, s.Duration(Break))
}

func TestFractionAndFocusMinutes(t *testing.T) {
	s := New(Settings{WorkDuration: 1, BreakDuration: 1}).Start()
	assert.Zero(t, s.Fraction())
	for i := 0; i < 30; i++ {
		s, _ = s.Tick()
	}
	assert.InDelta(t, 0.5, s.Fraction(), 1e-9)

	s.Sessions = 4
	assert.Equal(t, 4, s.FocusMinutes())

	zero := State{}
	assert.Zero(t, zero.Fraction())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "Focus", Focus.String())
	assert.Equal(t, "Break", Break.String())
}
