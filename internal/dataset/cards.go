package dataset

import (
	"time"

	"github.com/sadopc/studyr/internal/review"
)

// Flashcards returns the starter deck, all due at now.
func Flashcards(now time.Time) []review.Card {
	return []review.Card{
		review.NewCard("1", "What is the derivative of x²?", "2x",
			"Mathematics", "Calculus", review.Medium, now),
		review.NewCard("2", "Define photosynthesis",
			"The process by which plants convert light energy into chemical energy",
			"Biology", "Plant Biology", review.Easy, now),
		review.NewCard("3", "What is Newton's First Law?",
			"An object at rest stays at rest and an object in motion stays in motion unless acted upon by an external force",
			"Physics", "Mechanics", review.Medium, now),
	}
}
