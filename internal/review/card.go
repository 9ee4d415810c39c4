// Package review implements the flashcard review policy: a fixed-interval
// scheduler keyed on card difficulty and answer correctness.
package review

import "time"

// Difficulty is the ordinal difficulty of a card.
type Difficulty int

const (
	Easy   Difficulty = 1
	Medium Difficulty = 2
	Hard   Difficulty = 3
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	}
	return "Unknown"
}

// Valid reports whether d is one of Easy, Medium or Hard.
func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Hard
}

// Card is a single flashcard. Timestamps are epoch milliseconds so the
// persisted shape stays compatible with existing data.
type Card struct {
	ID             string     `json:"id"`
	Front          string     `json:"front"`
	Back           string     `json:"back"`
	Subject        string     `json:"subject"`
	Topic          string     `json:"topic"`
	Difficulty     Difficulty `json:"difficulty"`
	LastReviewed   *int64     `json:"lastReviewed"` // nil until first review
	NextReview     int64      `json:"nextReview"`
	CorrectCount   int        `json:"correctCount"`
	IncorrectCount int        `json:"incorrectCount"`
}

// NewCard returns a never-reviewed card that is due at now.
func NewCard(id, front, back, subject, topic string, d Difficulty, now time.Time) Card {
	return Card{
		ID:         id,
		Front:      front,
		Back:       back,
		Subject:    subject,
		Topic:      topic,
		Difficulty: d,
		NextReview: now.UnixMilli(),
	}
}

// Reviewed reports whether the card has been answered at least once.
func (c Card) Reviewed() bool {
	return c.LastReviewed != nil
}

// NextReviewTime returns NextReview as a time.Time.
func (c Card) NextReviewTime() time.Time {
	return time.UnixMilli(c.NextReview)
}

// LastReviewedTime returns the last review time and false when the card was
// never reviewed.
func (c Card) LastReviewedTime() (time.Time, bool) {
	if c.LastReviewed == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*c.LastReviewed), true
}
