// Package pomodoro is the focus/break timer as a pure state machine. Every
// transition returns a new State; callers own scheduling and persistence.
package pomodoro

// Phase is the current half of the cycle.
type Phase int

const (
	Focus Phase = iota
	Break
)

func (p Phase) String() string {
	if p == Break {
		return "Break"
	}
	return "Focus"
}

// Event reports what a Tick caused.
type Event int

const (
	NoEvent Event = iota
	FocusCompleted
	BreakCompleted
)

// State is a snapshot of the timer. Remaining is in seconds.
type State struct {
	Settings  Settings
	Phase     Phase
	Remaining int
	Running   bool
	Sessions  int
}

// New returns a paused timer at the start of a focus phase.
func New(s Settings) State {
	return State{Settings: s, Phase: Focus, Remaining: s.WorkDuration * 60}
}

// Duration returns the full length of phase p in seconds.
func (s State) Duration(p Phase) int {
	if p == Break {
		return s.Settings.BreakDuration * 60
	}
	return s.Settings.WorkDuration * 60
}

// Start resumes the countdown.
func (s State) Start() State {
	s.Running = true
	return s
}

// Pause stops the countdown without changing the phase.
func (s State) Pause() State {
	s.Running = false
	return s
}

// Toggle flips between running and paused.
func (s State) Toggle() State {
	s.Running = !s.Running
	return s
}

// Reset reloads the full duration of the current phase and pauses.
func (s State) Reset() State {
	s.Remaining = s.Duration(s.Phase)
	s.Running = false
	return s
}

// Tick advances a running timer by one second. When the countdown reaches
// zero the phase completes and the returned event says which one.
func (s State) Tick() (State, Event) {
	if !s.Running {
		return s, NoEvent
	}
	s.Remaining--
	if s.Remaining > 0 {
		return s, NoEvent
	}
	return s.complete()
}

func (s State) complete() (State, Event) {
	ev := BreakCompleted
	if s.Phase == Focus {
		s.Sessions++
		ev = FocusCompleted
	}
	s = s.switchPhase()
	return s, ev
}

// Skip jumps to the other phase without counting a session.
func (s State) Skip() State {
	return s.switchPhase()
}

func (s State) switchPhase() State {
	if s.Phase == Focus {
		s.Phase = Break
	} else {
		s.Phase = Focus
	}
	s.Remaining = s.Duration(s.Phase)
	s.Running = false
	return s
}

// WithSettings applies new durations. The timer pauses and the current phase
// restarts from its new full length.
func (s State) WithSettings(settings Settings) State {
	s.Settings = settings
	return s.Reset()
}

// Elapsed returns the seconds spent in the current phase.
func (s State) Elapsed() int {
	return s.Duration(s.Phase) - s.Remaining
}

// Fraction returns how much of the current phase has elapsed, in 0..1.
func (s State) Fraction() float64 {
	total := s.Duration(s.Phase)
	if total <= 0 {
		return 0
	}
	f := float64(s.Elapsed()) / float64(total)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// FocusMinutes returns the total focused time for the completed sessions.
func (s State) FocusMinutes() int {
	return s.Sessions * s.Settings.WorkDuration
}
