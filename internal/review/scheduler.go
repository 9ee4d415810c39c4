package review

import "time"

const day = 24 * time.Hour

// Review intervals, indexed by difficulty and clamped to the last entry.
var (
	correctIntervals   = []time.Duration{1 * day, 3 * day, 7 * day, 14 * day, 30 * day}
	incorrectIntervals = []time.Duration{12 * time.Hour, 1 * day, 2 * day}
)

// Interval returns how long a card stays out of rotation after an answer.
// Difficulty is used as a table index, not a multiplier.
func Interval(d Difficulty, isCorrect bool) time.Duration {
	table := incorrectIntervals
	if isCorrect {
		table = correctIntervals
	}
	idx := int(d)
	if idx < 0 {
		idx = 0
	}
	if idx > len(table)-1 {
		idx = len(table) - 1
	}
	return table[idx]
}

// RecordAnswer returns a copy of card updated for one answer given at now.
// Exactly one of the counters moves and NextReview is always recomputed.
func RecordAnswer(card Card, isCorrect bool, now time.Time) Card {
	out := card
	if isCorrect {
		out.CorrectCount++
	} else {
		out.IncorrectCount++
	}
	ms := now.UnixMilli()
	out.LastReviewed = &ms
	out.NextReview = ms + Interval(card.Difficulty, isCorrect).Milliseconds()
	return out
}

// IsDue reports whether card is eligible for review at now.
func IsDue(card Card, now time.Time) bool {
	return now.UnixMilli() >= card.NextReview
}

// DueCount returns how many cards are due at now.
func DueCount(cards []Card, now time.Time) int {
	n := 0
	for _, c := range cards {
		if IsDue(c, now) {
			n++
		}
	}
	return n
}

// NextIndex picks the card shown after current: plain round-robin over the
// persisted order, wrapping to the first card. Due dates are not consulted.
func NextIndex(current, n int) int {
	if n <= 0 {
		return 0
	}
	if current < 0 || current >= n-1 {
		return 0
	}
	return current + 1
}

// Accuracy returns the share of correct answers across all cards as a
// rounded percentage, or 0 when nothing has been reviewed.
func Accuracy(cards []Card) int {
	var correct, total int
	for _, c := range cards {
		correct += c.CorrectCount
		total += c.CorrectCount + c.IncorrectCount
	}
	if total == 0 {
		return 0
	}
	return (correct*100 + total/2) / total
}

// Replace returns a copy of cards with the card sharing updated's ID swapped
// for updated. Unknown IDs leave the slice contents unchanged.
func Replace(cards []Card, updated Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
			break
		}
	}
	return out
}
