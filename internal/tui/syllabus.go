package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studyr/internal/store"
	"github.com/sadopc/studyr/internal/syllabus"
)

type syllabusModel struct {
	repo   *store.Repo
	width  int
	height int

	tree     *syllabus.Tree
	expanded map[string]bool
	rows     []syllabus.Row
	cursor   int
	offset   int

	bar progress.Model
}

func newSyllabusModel(r *store.Repo) syllabusModel {
	s := syllabusModel{
		repo: r,
		bar:  progress.New(progress.WithSolidFill(string(colorSecondary)), progress.WithoutPercentage()),
	}
	s.reload()
	return s
}

func (s *syllabusModel) setSize(w, h int) {
	s.width = w
	s.height = h
	s.bar.Width = max(10, min(40, w/4))
}

// reload replaces the tree from the repository. Subjects start expanded.
func (s *syllabusModel) reload() {
	forest := s.repo.Syllabus()
	s.tree = syllabus.NewTree(forest)
	s.expanded = make(map[string]bool)
	for _, n := range forest {
		s.expanded[n.ID] = true
	}
	s.cursor = 0
	s.offset = 0
	s.rows = s.tree.Visible(s.expanded)
}

func (s syllabusModel) overall() int { return s.tree.Overall() }

func (s syllabusModel) update(msg tea.Msg) (syllabusModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || len(s.rows) == 0 {
		return s, nil
	}

	switch {
	case key.Matches(km, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(km, keys.Down):
		if s.cursor < len(s.rows)-1 {
			s.cursor++
		}
	case key.Matches(km, keys.Right):
		row := s.rows[s.cursor]
		switch {
		case row.Leaf:
		case row.Expanded:
			if children := s.tree.Children(row.ID); len(children) > 0 {
				s.cursor = s.indexOf(children[0])
			}
		default:
			s.expanded[row.ID] = true
			s.rows = s.tree.Visible(s.expanded)
		}
	case key.Matches(km, keys.Left):
		row := s.rows[s.cursor]
		if !row.Leaf && row.Expanded {
			s.expanded[row.ID] = false
			s.rows = s.tree.Visible(s.expanded)
		} else if parent, ok := s.tree.Parent(row.ID); ok {
			s.expanded[parent] = false
			s.rows = s.tree.Visible(s.expanded)
			s.cursor = s.indexOf(parent)
		}
	case key.Matches(km, keys.Enter), key.Matches(km, keys.Toggle):
		row := s.rows[s.cursor]
		if !s.tree.IsLeaf(row.ID) {
			s.expanded[row.ID] = !row.Expanded
			s.rows = s.tree.Visible(s.expanded)
			return s, nil
		}
		return s.toggle(row)
	}
	s.clampScroll()
	return s, nil
}

// toggle flips a leaf, persists the syllabus and refreshes the stats.
func (s syllabusModel) toggle(row syllabus.Row) (syllabusModel, tea.Cmd) {
	s.tree.Toggle(row.ID)
	s.rows = s.tree.Visible(s.expanded)
	_ = s.repo.SaveSyllabus(s.tree.Forest())
	s.repo.RefreshStats()

	verb := "Reopened"
	if n, _ := s.tree.Node(row.ID); n.Completed {
		verb = "Completed"
	}
	return s, statusCmd(fmt.Sprintf("%s %q", verb, row.Title))
}

func (s syllabusModel) indexOf(id string) int {
	for i, r := range s.rows {
		if r.ID == id {
			return i
		}
	}
	return 0
}

func (s *syllabusModel) visibleLines() int {
	return max(3, s.height-10)
}

func (s *syllabusModel) clampScroll() {
	if s.cursor >= len(s.rows) {
		s.cursor = max(0, len(s.rows)-1)
	}
	n := s.visibleLines()
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+n {
		s.offset = s.cursor - n + 1
	}
}

func (s syllabusModel) view() string {
	w := s.width - 4

	done, total := syllabus.Leaves(s.tree.Forest())
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Syllabus"), "  ",
		highlightStyle.Render(fmt.Sprintf("%d%%", s.overall())), "  ",
		mutedStyle.Render(fmt.Sprintf("%d/%d topics", done, total)),
	)

	if len(s.rows) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header, "", mutedStyle.Render("No syllabus yet. Load a template from Settings (t)."),
		))
	}

	titleWidth := max(10, w-s.bar.Width-20)
	end := min(len(s.rows), s.offset+s.visibleLines())

	var lines []string
	for i := s.offset; i < end; i++ {
		lines = append(lines, s.renderRow(s.rows[i], i == s.cursor, titleWidth))
	}

	nav := mutedStyle.Render("  ↑/↓: move  →/←: expand/collapse  space: toggle topic")
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header, "", strings.Join(lines, "\n"), "", nav,
	))
}

func (s syllabusModel) renderRow(r syllabus.Row, selected bool, titleWidth int) string {
	indent := strings.Repeat("  ", r.Depth)

	var marker string
	switch {
	case r.Leaf && r.Done:
		marker = successStyle.Render("✓")
	case r.Leaf:
		marker = mutedStyle.Render("○")
	case r.Expanded:
		marker = "▾"
	default:
		marker = "▸"
	}

	cursor := "  "
	style := normalItemStyle
	if selected {
		cursor = "> "
		style = selectedItemStyle
	}
	title := truncate(r.Title, titleWidth-len(indent))
	line := fmt.Sprintf("%s%s%s %s", cursor, indent, marker, style.Render(title))

	if r.Leaf {
		return line
	}
	pad := max(1, titleWidth+4-lipgloss.Width(line))
	return line + strings.Repeat(" ", pad) +
		s.bar.ViewAs(float64(r.Progress)/100) +
		mutedStyle.Render(fmt.Sprintf(" %3d%%", r.Progress))
}
