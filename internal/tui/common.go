package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/studyr/internal/pomodoro"
	"github.com/sadopc/studyr/internal/stats"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTimer
	viewSyllabus
	viewFlashcards
	viewAnalytics
	viewSettings
)

var viewNames = []string{"Dashboard", "Timer", "Syllabus", "Flashcards", "Analytics", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// tickMsg drives the pomodoro countdown. Ticks whose gen does not match the
// timer's current generation are stale and ignored.
type tickMsg struct {
	gen int
	at  time.Time
}

type exportDoneMsg struct {
	path string
}

type focusRecordedMsg struct {
	session stats.Session
}

type settingsSavedMsg struct {
	settings pomodoro.Settings
}

// dataChangedMsg asks every view to reload from the repository, e.g. after a
// template was applied.
type dataChangedMsg struct{}

// --- Helpers ---

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

// errCmd reports err in the status line. A nil err yields no command.
//
// Failed saves are not reported here: the repository logs them and views
// keep their in-memory state.
func errCmd(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}

func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func formatMinutes(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
