package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studyr/internal/review"
	"github.com/sadopc/studyr/internal/store"
)

type flashcardsModel struct {
	repo   *store.Repo
	width  int
	height int

	cards  []review.Card
	cursor int

	studying bool
	current  int
	flipped  bool

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formFront      *string
	formBack       *string
	formSubject    *string
	formTopic      *string
	formDifficulty *review.Difficulty
}

func newFlashcardsModel(r *store.Repo) flashcardsModel {
	front, back, subject, topic := "", "", "", ""
	d := review.Medium
	return flashcardsModel{
		repo:           r,
		cards:          r.Flashcards(),
		formFront:      &front,
		formBack:       &back,
		formSubject:    &subject,
		formTopic:      &topic,
		formDifficulty: &d,
	}
}

func (f *flashcardsModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

func (f *flashcardsModel) reload() {
	f.cards = f.repo.Flashcards()
	f.studying = false
	f.flipped = false
	f.current = 0
	if f.cursor >= len(f.cards) {
		f.cursor = max(0, len(f.cards)-1)
	}
}

func (f flashcardsModel) update(msg tea.Msg) (flashcardsModel, tea.Cmd) {
	if f.formActive && f.form != nil {
		return f.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}
	if f.studying {
		return f.updateStudy(km)
	}

	switch {
	case key.Matches(km, keys.Up):
		if f.cursor > 0 {
			f.cursor--
		}
	case key.Matches(km, keys.Down):
		if f.cursor < len(f.cards)-1 {
			f.cursor++
		}
	case key.Matches(km, keys.Study), key.Matches(km, keys.Enter):
		if len(f.cards) == 0 {
			return f, statusCmd("No flashcards yet. Press a to add one.")
		}
		f.studying = true
		f.flipped = false
		f.current = f.firstDue(f.repo.Now())
	case key.Matches(km, keys.New):
		return f.showForm()
	}
	return f, nil
}

// firstDue returns the first due card, or the cursor card when none is due.
func (f flashcardsModel) firstDue(now time.Time) int {
	for i, c := range f.cards {
		if review.IsDue(c, now) {
			return i
		}
	}
	return f.cursor
}

func (f flashcardsModel) updateStudy(km tea.KeyMsg) (flashcardsModel, tea.Cmd) {
	switch {
	case key.Matches(km, keys.Back):
		f.studying = false
		f.cursor = f.current
	case key.Matches(km, keys.Toggle), key.Matches(km, keys.Enter):
		f.flipped = !f.flipped
	case key.Matches(km, keys.Right):
		f.current = review.NextIndex(f.current, len(f.cards))
		f.flipped = false
	case key.Matches(km, keys.Correct):
		return f.answer(true)
	case key.Matches(km, keys.Incorrect):
		return f.answer(false)
	}
	return f, nil
}

// answer grades the current card, persists the deck and advances round-robin.
func (f flashcardsModel) answer(correct bool) (flashcardsModel, tea.Cmd) {
	if !f.flipped || f.current >= len(f.cards) {
		return f, nil
	}
	card := review.RecordAnswer(f.cards[f.current], correct, f.repo.Now())
	f.cards = review.Replace(f.cards, card)
	_ = f.repo.SaveFlashcards(f.cards)

	f.current = review.NextIndex(f.current, len(f.cards))
	f.flipped = false
	return f, statusCmd(fmt.Sprintf("Next review %s", card.NextReviewTime().Format("Mon Jan 2 15:04")))
}

func (f flashcardsModel) showForm() (flashcardsModel, tea.Cmd) {
	*f.formFront = ""
	*f.formBack = ""
	*f.formTopic = ""
	if f.cursor < len(f.cards) {
		*f.formSubject = f.cards[f.cursor].Subject
	}
	*f.formDifficulty = review.Medium

	notEmpty := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("required")
		}
		return nil
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Question").Value(f.formFront).Validate(notEmpty),
			huh.NewText().Title("Answer").Value(f.formBack).Validate(notEmpty),
			huh.NewInput().Title("Subject").Value(f.formSubject),
			huh.NewInput().Title("Topic").Value(f.formTopic),
			huh.NewSelect[review.Difficulty]().Title("Difficulty").
				Options(
					huh.NewOption("Easy", review.Easy),
					huh.NewOption("Medium", review.Medium),
					huh.NewOption("Hard", review.Hard),
				).Value(f.formDifficulty),
		).Title("New Flashcard"),
	).WithShowHelp(true).WithShowErrors(true)

	f.formActive = true
	return f, f.form.Init()
}

func (f flashcardsModel) updateForm(msg tea.Msg) (flashcardsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			f.formActive = false
			f.form = nil
			return f, nil
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		f.formActive = false
		subject := strings.TrimSpace(*f.formSubject)
		if subject == "" {
			subject = generalSubject
		}
		card, err := f.repo.AddCard(
			strings.TrimSpace(*f.formFront),
			strings.TrimSpace(*f.formBack),
			subject,
			strings.TrimSpace(*f.formTopic),
			*f.formDifficulty,
		)
		// A card without an id was rejected; a failed save still yields one.
		if card.ID == "" {
			return f, errCmd(err)
		}
		f.cards = append(f.cards, card)
		f.cursor = len(f.cards) - 1
		return f, statusCmd("Flashcard added")
	}

	return f, cmd
}

func (f flashcardsModel) view() string {
	w := f.width - 4

	if f.formActive && f.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Flashcards"), "", f.form.View()),
		)
	}
	if f.studying && f.current < len(f.cards) {
		return f.renderStudy(w)
	}
	return f.renderOverview(w)
}

func (f flashcardsModel) renderOverview(w int) string {
	now := f.repo.Now()
	due := review.DueCount(f.cards, now)
	unseen := 0
	for _, c := range f.cards {
		if !c.Reviewed() {
			unseen++
		}
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Flashcards"), "  ",
		highlightStyle.Render(fmt.Sprintf("%d due", due)), "  ",
		mutedStyle.Render(fmt.Sprintf("%d cards · %d new · %d%% accuracy", len(f.cards), unseen, review.Accuracy(f.cards))),
	)

	if len(f.cards) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header, "", mutedStyle.Render("No flashcards yet. Press a to add one."),
		))
	}

	frontWidth := max(10, w-50)
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-*s %-14s %-7s %s", frontWidth, "Question", "Subject", "Level", "Next review")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, frontWidth+40))))

	for i, c := range f.cards {
		cursor := "  "
		style := normalItemStyle
		if i == f.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		next := mutedStyle.Render(c.NextReviewTime().Format("Jan 02 15:04"))
		if review.IsDue(c, now) {
			next = warningStyle.Render("due now")
		}
		level := difficultyStyle(int(c.Difficulty)).Render(fmt.Sprintf("%-7s", c.Difficulty))
		rows = append(rows, fmt.Sprintf("%s%s %-14s %s %s",
			cursor,
			style.Render(fmt.Sprintf("%-*s", frontWidth, truncate(c.Front, frontWidth))),
			truncate(c.Subject, 14),
			level,
			next,
		))
	}

	nav := mutedStyle.Render("  s/enter: study  a: add card  ↑/↓: move")
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header, "", strings.Join(rows, "\n"), "", nav,
	))
}

func (f flashcardsModel) renderStudy(w int) string {
	c := f.cards[f.current]

	meta := mutedStyle.Render(fmt.Sprintf("%s · %s · ", c.Subject, c.Topic)) +
		difficultyStyle(int(c.Difficulty)).Render(c.Difficulty.String())
	counter := mutedStyle.Render(fmt.Sprintf("Card %d of %d", f.current+1, len(f.cards)))

	cardWidth := max(20, min(70, w-10))
	var face, hint string
	if f.flipped {
		face = cardBackStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Center,
			mutedStyle.Render("ANSWER"), "", c.Back))
		hint = mutedStyle.Render("y: correct  n: incorrect  space: flip back")
	} else {
		face = cardFrontStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Center,
			mutedStyle.Render("QUESTION"), "", c.Front))
		hint = mutedStyle.Render("space: show answer  →: skip  esc: back")
	}

	score := fmt.Sprintf("%s  %s",
		successStyle.Render(fmt.Sprintf("✓ %d", c.CorrectCount)),
		errorStyle.Render(fmt.Sprintf("✗ %d", c.IncorrectCount)))

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Study"), counter, meta, "", face, "", score, "", hint,
	))
}
