package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studyr/internal/export"
	"github.com/sadopc/studyr/internal/pomodoro"
	"github.com/sadopc/studyr/internal/store"
)

var exportFormats = []string{"Flashcards (CSV)", "Full backup (JSON)"}

// App is the root Bubble Tea model.
type App struct {
	repo   *store.Repo
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	exportDir     string

	dashboard  dashboardModel
	timer      timerModel
	syllabus   syllabusModel
	flashcards flashcardsModel
	analytics  analyticsModel
	settings   settingsModel

	help   help.Model
	status string
	isErr  bool
}

func NewApp(r *store.Repo) App {
	h := help.New()
	h.ShowAll = false

	dir, err := os.UserHomeDir()
	if err != nil {
		dir = "."
	}

	return App{
		repo:       r,
		activeView: viewDashboard,
		exportDir:  dir,
		dashboard:  newDashboardModel(r),
		timer:      newTimerModel(r),
		syllabus:   newSyllabusModel(r),
		flashcards: newFlashcardsModel(r),
		analytics:  newAnalyticsModel(r),
		settings:   newSettingsModel(r),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.dashboard.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.timer.setSize(a.width, contentHeight)
		a.syllabus.setSize(a.width, contentHeight)
		a.flashcards.setSize(a.width, contentHeight)
		a.analytics.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewTimer)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewSyllabus)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewFlashcards)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewAnalytics)
		case key.Matches(msg, keys.Tab6):
			return a.switchTo(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}

	case tickMsg:
		// The timer keeps counting whichever view is active.
		var cmd tea.Cmd
		a.timer, cmd = a.timer.update(msg)
		return a, cmd

	case settingsSavedMsg:
		a.timer, _ = a.timer.update(msg)
		a.status, a.isErr = "Settings saved", false
		return a, a.refreshSummaries()

	case focusRecordedMsg:
		return a, a.refreshSummaries()

	case dataChangedMsg:
		a.syllabus.reload()
		a.flashcards.reload()
		a.timer.setSubjects(a.repo.Syllabus())
		a.settings.load()
		return a, a.refreshSummaries()

	case dashboardDataMsg:
		a.dashboard, _ = a.dashboard.update(msg)
		return a, nil

	case analyticsDataMsg:
		a.analytics, _ = a.analytics.update(msg)
		return a, nil

	case statusMsg:
		a.status, a.isErr = msg.text, msg.isError
		return a, nil

	case exportDoneMsg:
		a.status, a.isErr = "Exported to "+msg.path, false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewTimer:
		a.timer, cmd = a.timer.update(msg)
	case viewSyllabus:
		a.syllabus, cmd = a.syllabus.update(msg)
	case viewFlashcards:
		a.flashcards, cmd = a.flashcards.update(msg)
	case viewAnalytics:
		a.analytics, cmd = a.analytics.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewFlashcards:
		return a.flashcards.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewAnalytics:
		return a.analytics.refresh()
	}
	return nil
}

// refreshSummaries reloads the views that show derived numbers.
func (a App) refreshSummaries() tea.Cmd {
	return tea.Batch(a.dashboard.loadData(), a.analytics.refresh())
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewTimer:
		content = a.timer.view()
	case viewSyllabus:
		content = a.syllabus.view()
	case viewFlashcards:
		content = a.flashcards.view()
	case viewAnalytics:
		content = a.analytics.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("studyr")
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.isErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Timer indicator in footer
	timerInfo := ""
	if a.timer.running() {
		clock := formatClock(a.timer.state.Remaining)
		if a.timer.state.Phase == pomodoro.Focus {
			timerInfo = focusStyle.Render(" ● " + clock)
		} else {
			timerInfo = breakStyle.Render(" ☕ " + clock)
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	day := a.repo.Now()
	return func() tea.Msg {
		var path string
		if format == 0 {
			path = filepath.Join(a.exportDir, ExportFileName("csv", day))
			if err := export.CardsToCSV(a.repo.Flashcards(), path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(a.exportDir, ExportFileName("json", day))
			if err := export.SnapshotToJSON(a.repo.Snapshot(), path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}
		return exportDoneMsg{path: path}
	}
}

// ExportFileName returns the default export file name for ext on day.
func ExportFileName(ext string, day time.Time) string {
	return fmt.Sprintf("studyr-export-%s.%s", day.Format("2006-01-02"), ext)
}
