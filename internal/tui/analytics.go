package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studyr/internal/review"
	"github.com/sadopc/studyr/internal/stats"
	"github.com/sadopc/studyr/internal/store"
	"github.com/sadopc/studyr/internal/syllabus"
)

var subjectColors = []string{"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#9B59B6", "#3498DB"}

type analyticsModel struct {
	repo   *store.Repo
	width  int
	height int

	offset int // 7-day blocks back from today (0 = current)

	days      []stats.DayTotal
	subjects  []stats.SubjectTotal
	summary   stats.StudyStats
	progress  int
	accuracy  int
	cardCount int

	chart barchart.Model
}

func newAnalyticsModel(r *store.Repo) analyticsModel {
	return analyticsModel{
		repo:  r,
		chart: barchart.New(60, 12),
	}
}

func (a *analyticsModel) setSize(w, h int) {
	a.width = w
	a.height = h
}

type analyticsDataMsg struct {
	days      []stats.DayTotal
	subjects  []stats.SubjectTotal
	summary   stats.StudyStats
	progress  int
	accuracy  int
	cardCount int
}

func (a analyticsModel) refresh() tea.Cmd {
	now := a.repo.Now()
	end := now.AddDate(0, 0, -7*a.offset)
	return func() tea.Msg {
		sessions := a.repo.Sessions()
		forest := a.repo.Syllabus()
		cards := a.repo.Flashcards()
		return analyticsDataMsg{
			days:      stats.Daily(sessions, end, 7),
			subjects:  stats.BySubject(sessions),
			summary:   stats.Compute(sessions, forest, a.repo.WeeklyGoal(), now),
			progress:  syllabus.ForestProgress(forest),
			accuracy:  review.Accuracy(cards),
			cardCount: len(cards),
		}
	}
}

func (a analyticsModel) update(msg tea.Msg) (analyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case analyticsDataMsg:
		a.days = msg.days
		a.subjects = msg.subjects
		a.summary = msg.summary
		a.progress = msg.progress
		a.accuracy = msg.accuracy
		a.cardCount = msg.cardCount
		a.buildChart()
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			a.offset++
			return a, a.refresh()
		case key.Matches(msg, keys.Right):
			if a.offset > 0 {
				a.offset--
			}
			return a, a.refresh()
		}
	}
	return a, nil
}

func (a *analyticsModel) buildChart() {
	chartWidth := a.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if a.height > 34 {
		chartHeight = 14
	}

	a.chart = barchart.New(chartWidth, chartHeight)

	style := lipgloss.NewStyle().Foreground(colorPrimary)
	var bars []barchart.BarData
	for _, d := range a.days {
		bars = append(bars, barchart.BarData{
			Label: d.Day.Format("Mon 02"),
			Values: []barchart.BarValue{{
				Name:  "minutes",
				Value: float64(d.Minutes),
				Style: style,
			}},
		})
	}

	a.chart.PushAll(bars)
	a.chart.Draw()
}

func (a analyticsModel) view() string {
	w := a.width - 4

	rangeLabel := ""
	if len(a.days) > 0 {
		first, last := a.days[0].Day, a.days[len(a.days)-1].Day
		rangeLabel = mutedStyle.Render(fmt.Sprintf("%s to %s", first.Format("Jan 02"), last.Format("Jan 02, 2006")))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("Analytics"), "  ", rangeLabel)

	week := 0
	for _, d := range a.days {
		week += d.Minutes
	}

	overview := fmt.Sprintf("  %s %s   %s %s   %s %s   %s %s",
		mutedStyle.Render("This range"), highlightStyle.Render(formatMinutes(week)),
		mutedStyle.Render("Streak"), highlightStyle.Render(fmt.Sprintf("%d days", a.summary.Streak)),
		mutedStyle.Render("Avg session"), highlightStyle.Render(formatMinutes(a.summary.AverageSessionLength)),
		mutedStyle.Render("Sessions"), highlightStyle.Render(fmt.Sprintf("%d", a.summary.TotalSessions)),
	)
	completion := fmt.Sprintf("  %s %s   %s %s",
		mutedStyle.Render("Syllabus complete"), highlightStyle.Render(fmt.Sprintf("%d%%", a.progress)),
		mutedStyle.Render("Card accuracy"), highlightStyle.Render(fmt.Sprintf("%d%% over %d cards", a.accuracy, a.cardCount)),
	)

	nav := mutedStyle.Render("  ←/→: previous/next week")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", a.chart.View(), "", overview, completion, "", a.renderSubjects(w), "", nav,
		),
	)
}

func (a analyticsModel) renderSubjects(w int) string {
	if len(a.subjects) == 0 {
		return mutedStyle.Render("  No focus sessions logged yet")
	}

	total := 0
	for _, s := range a.subjects {
		total += s.Minutes
	}

	barWidth := max(10, min(40, w-40))
	var rows []string
	rows = append(rows, titleStyle.Render("  By subject"))
	for i, s := range a.subjects {
		color := lipgloss.Color(subjectColors[i%len(subjectColors)])
		filled := 0
		if total > 0 {
			filled = s.Minutes * barWidth / total
		}
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
			mutedStyle.Render(strings.Repeat("░", barWidth-filled))
		rows = append(rows, fmt.Sprintf("  %-20s %s %s", truncate(s.Subject, 20), bar, formatMinutes(s.Minutes)))
	}
	return strings.Join(rows, "\n")
}
