package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studyr/internal/dataset"
	"github.com/sadopc/studyr/internal/pomodoro"
	"github.com/sadopc/studyr/internal/store"
)

type settingsForm int

const (
	formNone settingsForm = iota
	formDurations
	formTemplate
)

type settingsModel struct {
	repo   *store.Repo
	width  int
	height int

	settings   pomodoro.Settings
	weeklyGoal int // minutes

	formActive bool
	formKind   settingsForm
	form       *huh.Form

	// Form values as pointers (survive value copies)
	workText    *string
	breakText   *string
	goalText    *string
	template    *string
	confirmLoad *bool
}

func newSettingsModel(r *store.Repo) settingsModel {
	wt, bt, gt, tpl := "", "", "", ""
	confirm := false
	s := settingsModel{
		repo:        r,
		workText:    &wt,
		breakText:   &bt,
		goalText:    &gt,
		template:    &tpl,
		confirmLoad: &confirm,
	}
	s.load()
	return s
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s *settingsModel) load() {
	s.settings = s.repo.PomodoroSettings()
	s.weeklyGoal = s.repo.WeeklyGoal()
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter):
			return s.showDurationsForm()
		case key.Matches(msg, keys.Template):
			return s.showTemplateForm()
		}
	}
	return s, nil
}

func (s settingsModel) showDurationsForm() (settingsModel, tea.Cmd) {
	*s.workText = strconv.Itoa(s.settings.WorkDuration)
	*s.breakText = strconv.Itoa(s.settings.BreakDuration)
	*s.goalText = minutesToHours(s.weeklyGoal)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus (min)").Value(s.workText),
			huh.NewInput().Title("Break (min)").Value(s.breakText),
		).Title("Pomodoro"),
		huh.NewGroup(
			huh.NewInput().Title("Weekly goal (hours)").Value(s.goalText),
		).Title("Goals"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	s.formKind = formDurations
	return s, s.form.Init()
}

func (s settingsModel) showTemplateForm() (settingsModel, tea.Cmd) {
	var opts []huh.Option[string]
	for _, t := range dataset.Templates() {
		opts = append(opts, huh.NewOption(t.Name, t.ID))
	}
	*s.template = dataset.TemplateNames()[0]
	*s.confirmLoad = false

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Exam template").Options(opts...).Value(s.template),
			huh.NewConfirm().
				Title("Replace the current syllabus?").
				Description("Topic progress is lost; sample flashcards are added to your deck.").
				Value(s.confirmLoad),
		),
	).WithShowHelp(true)

	s.formActive = true
	s.formKind = formTemplate
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if s.formKind == formTemplate {
			return s.applyTemplate()
		}
		return s.saveSettings()
	}

	return s, cmd
}

// saveSettings applies the form. Unparseable or out of range input keeps the
// previous value.
func (s settingsModel) saveSettings() (settingsModel, tea.Cmd) {
	next := pomodoro.Settings{
		WorkDuration:  pomodoro.ParseMinutes(*s.workText, s.settings.WorkDuration),
		BreakDuration: pomodoro.ParseMinutes(*s.breakText, s.settings.BreakDuration),
	}
	goal := parseHours(*s.goalText, s.weeklyGoal)

	_ = s.repo.SavePomodoroSettings(next)
	_ = s.repo.SaveWeeklyGoal(goal)
	s.settings = next
	s.weeklyGoal = goal
	s.repo.RefreshStats()

	return s, func() tea.Msg { return settingsSavedMsg{settings: next} }
}

func (s settingsModel) applyTemplate() (settingsModel, tea.Cmd) {
	if !*s.confirmLoad {
		return s, statusCmd("Template not loaded")
	}
	tpl, err := s.repo.ApplyTemplate(*s.template)
	if err != nil {
		return s, errCmd(err)
	}
	return s, tea.Batch(
		statusCmd(fmt.Sprintf("Loaded %s syllabus", tpl.Name)),
		func() tea.Msg { return dataChangedMsg{} },
	)
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(24).Render(label), highlightStyle.Render(value))
	}

	rows := []string{
		title,
		"",
		row("Focus duration", fmt.Sprintf("%d min", s.settings.WorkDuration)),
		row("Break duration", fmt.Sprintf("%d min", s.settings.BreakDuration)),
		row("Weekly goal", fmt.Sprintf("%s hours", minutesToHours(s.weeklyGoal))),
		"",
		subtitleStyle.Render("  Templates: " + strings.Join(dataset.TemplateNames(), ", ")),
		"",
		mutedStyle.Render("Press enter to edit settings, t to load an exam template"),
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func minutesToHours(mins int) string {
	return strconv.FormatFloat(float64(mins)/60, 'f', -1, 64)
}

// parseHours converts an hours string to minutes, returning lastGood for
// anything that is not a non-negative number.
func parseHours(text string, lastGood int) int {
	h, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || h < 0 || h > 168 {
		return lastGood
	}
	return int(h*60 + 0.5)
}
