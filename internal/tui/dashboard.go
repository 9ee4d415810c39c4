package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studyr/internal/review"
	"github.com/sadopc/studyr/internal/stats"
	"github.com/sadopc/studyr/internal/store"
	"github.com/sadopc/studyr/internal/syllabus"
)

const recentLimit = 5

type dashboardModel struct {
	repo   *store.Repo
	width  int
	height int

	stats    stats.StudyStats
	due      int
	cards    int
	progress int
	subjects []subjectProgress
	recent   []stats.Session

	bar progress.Model
}

type subjectProgress struct {
	title    string
	progress int
}

func newDashboardModel(r *store.Repo) dashboardModel {
	return dashboardModel{
		repo: r,
		bar:  progress.New(progress.WithDefaultGradient()),
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.bar.Width = max(10, min(50, w-30))
}

type dashboardDataMsg struct {
	stats    stats.StudyStats
	due      int
	cards    int
	progress int
	subjects []subjectProgress
	recent   []stats.Session
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		now := d.repo.Now()
		cards := d.repo.Flashcards()
		forest := d.repo.Syllabus()
		sessions := d.repo.Sessions()
		summary := stats.Compute(sessions, forest, d.repo.WeeklyGoal(), now)

		var subjects []subjectProgress
		for _, n := range forest {
			subjects = append(subjects, subjectProgress{title: n.Title, progress: syllabus.Progress(n)})
		}

		var recent []stats.Session
		for i := len(sessions) - 1; i >= 0 && len(recent) < recentLimit; i-- {
			if sessions[i].Type == stats.SessionFocus {
				recent = append(recent, sessions[i])
			}
		}

		return dashboardDataMsg{
			stats:    summary,
			due:      review.DueCount(cards, now),
			cards:    len(cards),
			progress: syllabus.ForestProgress(forest),
			subjects: subjects,
			recent:   recent,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(dashboardDataMsg); ok {
		d.stats = msg.stats
		d.due = msg.due
		d.cards = msg.cards
		d.progress = msg.progress
		d.subjects = msg.subjects
		d.recent = msg.recent
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderStatCards(contentWidth),
		d.renderProgressPanel(contentWidth),
		d.renderRecentPanel(contentWidth),
	)
}

func (d dashboardModel) renderStatCards(w int) string {
	card := func(label, value string) string {
		return statCardStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			statValueStyle.Render(value),
			mutedStyle.Render(label),
		))
	}

	dueValue := fmt.Sprintf("%d/%d", d.due, d.cards)
	cards := []string{
		card("Today", formatMinutes(d.stats.TodayMinutes)),
		card("Streak", fmt.Sprintf("%d days", d.stats.Streak)),
		card("Weekly goal", fmt.Sprintf("%d%%", d.stats.WeeklyGoal)),
		card("Cards due", dueValue),
		card("Topics done", fmt.Sprintf("%d", d.stats.CompletedTopics)),
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if lipgloss.Width(row) > w {
		// Two rows on narrow terminals.
		row = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, cards[:3]...),
			lipgloss.JoinHorizontal(lipgloss.Top, cards[3:]...),
		)
	}
	return row
}

func (d dashboardModel) renderProgressPanel(w int) string {
	title := titleStyle.Render("Syllabus")
	overall := highlightStyle.Render(fmt.Sprintf("%d%%", d.progress))
	rows := []string{
		fmt.Sprintf("%s  %s", title, overall),
		d.bar.ViewAs(float64(d.progress) / 100),
	}

	if len(d.subjects) == 0 {
		rows = append(rows, mutedStyle.Render("No syllabus yet. Load a template from Settings."))
	}
	for _, s := range d.subjects {
		rows = append(rows, fmt.Sprintf("  %-28s %3d%%", truncate(s.title, 28), s.progress))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Sessions")
	header := fmt.Sprintf("%s  %s", title,
		mutedStyle.Render(fmt.Sprintf("%d total · avg %s", d.stats.TotalSessions, formatMinutes(d.stats.AverageSessionLength))))

	if len(d.recent) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			mutedStyle.Render("No focus sessions yet. Press 2 to start the timer."),
		)
		return panelStyle.Width(w).Render(content)
	}

	rows := []string{header}
	for _, s := range d.recent {
		when := s.Time().Local().Format("Jan 02 15:04")
		row := fmt.Sprintf("  ✓ %s  %-20s %s", when, truncate(s.Subject, 20), formatMinutes(s.Duration))
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
