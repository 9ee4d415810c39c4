package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studyr/internal/pomodoro"
	"github.com/sadopc/studyr/internal/store"
	"github.com/sadopc/studyr/internal/syllabus"
)

const generalSubject = "General"

// timerModel wraps the pomodoro state machine. It owns the one-second tick:
// a tick is scheduled only while running, and every transition that stops
// or restarts the countdown bumps gen so in-flight ticks are dropped.
type timerModel struct {
	repo   *store.Repo
	width  int
	height int

	state pomodoro.State
	gen   int

	subjects []string
	subject  int

	bar progress.Model
}

func newTimerModel(r *store.Repo) timerModel {
	t := timerModel{
		repo:  r,
		state: pomodoro.New(r.PomodoroSettings()),
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	t.setSubjects(r.Syllabus())
	return t
}

func (t *timerModel) setSize(w, h int) {
	t.width = w
	t.height = h
	t.bar.Width = max(10, min(60, w-12))
}

// setSubjects offers the syllabus subjects plus a catch-all, keeping the
// current selection when it still exists.
func (t *timerModel) setSubjects(forest []syllabus.Node) {
	current := t.currentSubject()
	names := []string{generalSubject}
	for _, n := range forest {
		names = append(names, n.Title)
	}
	t.subjects = names
	t.subject = 0
	for i, n := range names {
		if n == current {
			t.subject = i
		}
	}
}

func (t timerModel) currentSubject() string {
	if t.subject < len(t.subjects) {
		return t.subjects[t.subject]
	}
	return generalSubject
}

func (t timerModel) running() bool { return t.state.Running }

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.gen != t.gen || !t.state.Running {
			return t, nil
		}
		var ev pomodoro.Event
		t.state, ev = t.state.Tick()
		switch ev {
		case pomodoro.FocusCompleted:
			t.gen++
			return t, t.recordFocus()
		case pomodoro.BreakCompleted:
			t.gen++
			return t, statusCmd("Break over. Time to get back to work! \a")
		}
		return t, tickCmd(t.gen)

	case settingsSavedMsg:
		return t.applySettings(msg.settings), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			return t.toggle()
		case key.Matches(msg, keys.Reset):
			t.state = t.state.Reset()
			t.gen++
			return t, nil
		case key.Matches(msg, keys.Skip):
			t.state = t.state.Skip()
			t.gen++
			return t, statusCmd(fmt.Sprintf("Skipped to %s", t.state.Phase))
		case key.Matches(msg, keys.Left):
			if !t.state.Running && len(t.subjects) > 0 {
				t.subject = (t.subject - 1 + len(t.subjects)) % len(t.subjects)
			}
		case key.Matches(msg, keys.Right):
			if !t.state.Running && len(t.subjects) > 0 {
				t.subject = (t.subject + 1) % len(t.subjects)
			}
		}
	}
	return t, nil
}

func (t timerModel) toggle() (timerModel, tea.Cmd) {
	t.gen++
	if t.state.Running {
		t.state = t.state.Pause()
		return t, nil
	}
	t.state = t.state.Start()
	return t, tickCmd(t.gen)
}

func (t timerModel) applySettings(s pomodoro.Settings) timerModel {
	t.state = t.state.WithSettings(s)
	t.gen++
	return t
}

func (t timerModel) recordFocus() tea.Cmd {
	sess, _ := t.repo.RecordFocusSession(t.currentSubject(), t.state.Settings.WorkDuration)
	return tea.Batch(
		statusCmd("Great job! Time for a break. \a"),
		func() tea.Msg { return focusRecordedMsg{session: sess} },
	)
}

func (t timerModel) view() string {
	w := t.width - 4

	title := titleStyle.Render("Pomodoro Timer")

	label, style := "FOCUS", focusStyle
	if t.state.Phase == pomodoro.Break {
		label, style = "BREAK", breakStyle
	}

	var status string
	switch {
	case t.state.Running:
		status = successStyle.Render("●  RUNNING")
	case t.state.Elapsed() > 0:
		status = warningStyle.Render("⏸  PAUSED")
	default:
		status = mutedStyle.Render("■  READY")
	}

	timeDisplay := style.Width(max(0, w-6)).Align(lipgloss.Center).Render(formatClock(t.state.Remaining))

	subject := mutedStyle.Render("Subject: ") + highlightStyle.Render(t.currentSubject())
	if !t.state.Running && len(t.subjects) > 1 {
		subject += mutedStyle.Render("  (←/→ to change)")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		style.Render(label),
		timeDisplay,
		t.bar.ViewAs(t.state.Fraction()),
		status,
		"",
		subject,
		t.renderSessions(),
	)

	controls := mutedStyle.Render("space: start/pause  r: reset  x: skip phase")
	durations := mutedStyle.Render(fmt.Sprintf("%d min focus · %d min break",
		t.state.Settings.WorkDuration, t.state.Settings.BreakDuration))

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", durations, controls),
	)
}

// renderSessions draws one dot per completed focus session in the current
// group of four.
func (t timerModel) renderSessions() string {
	const group = 4
	done := t.state.Sessions % group
	var parts []string
	for i := 0; i < group; i++ {
		switch {
		case i < done:
			parts = append(parts, successStyle.Render("●"))
		case i == done && t.state.Phase == pomodoro.Focus && t.state.Running:
			parts = append(parts, focusStyle.Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	counter := mutedStyle.Render(fmt.Sprintf("  %d sessions · %s focused",
		t.state.Sessions, formatMinutes(t.state.FocusMinutes())))
	return strings.Join(parts, " ") + counter
}
