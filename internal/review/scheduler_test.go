package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const msPerDay = int64(86_400_000)

func TestIntervalTable(t *testing.T) {
	tests := []struct {
		d       Difficulty
		correct bool
		wantMs  int64
	}{
		{Easy, true, 3 * msPerDay},
		{Medium, true, 7 * msPerDay},
		{Hard, true, 14 * msPerDay},
		{Easy, false, 1 * msPerDay},
		{Medium, false, 2 * msPerDay},
		{Hard, false, 2 * msPerDay},
	}
	for _, tt := range tests {
		card := Card{ID: "c", Difficulty: tt.d}
		now := time.UnixMilli(1_700_000_000_000)
		got := RecordAnswer(card, tt.correct, now)
		assert.Equal(t, tt.wantMs, got.NextReview-now.UnixMilli(),
			"difficulty=%d correct=%v", tt.d, tt.correct)
	}
}

func TestIntervalClampsOutOfRange(t *testing.T) {
	assert.Equal(t, 30*day, Interval(Difficulty(9), true))
	assert.Equal(t, 2*day, Interval(Difficulty(9), false))
	assert.Equal(t, 1*day, Interval(Difficulty(-4), true))
	assert.Equal(t, 12*time.Hour, Interval(Difficulty(-4), false))
	assert.Equal(t, 1*day, Interval(Difficulty(0), true))
	assert.Equal(t, 12*time.Hour, Interval(Difficulty(0), false))
}

func TestRecordAnswerAtEpoch(t *testing.T) {
	epoch := time.UnixMilli(0)

	got := RecordAnswer(Card{Difficulty: 0}, true, epoch)
	assert.Equal(t, int64(86_400_000), got.NextReview)

	got = RecordAnswer(Card{Difficulty: 0}, false, epoch)
	assert.Equal(t, int64(43_200_000), got.NextReview)

	got = RecordAnswer(Card{Difficulty: Easy}, false, epoch)
	assert.Equal(t, int64(86_400_000), got.NextReview)
}

func TestRecordAnswerCounters(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	card := NewCard("1", "front", "back", "Math", "Calculus", Medium, now.Add(-time.Hour))
	card.CorrectCount = 2
	card.IncorrectCount = 5

	right := RecordAnswer(card, true, now)
	assert.Equal(t, 3, right.CorrectCount)
	assert.Equal(t, 5, right.IncorrectCount)

	wrong := RecordAnswer(card, false, now)
	assert.Equal(t, 2, wrong.CorrectCount)
	assert.Equal(t, 6, wrong.IncorrectCount)

	for _, got := range []Card{right, wrong} {
		require.NotNil(t, got.LastReviewed)
		assert.Equal(t, now.UnixMilli(), *got.LastReviewed)
		assert.Equal(t, card.ID, got.ID)
		assert.Equal(t, card.Front, got.Front)
		assert.Equal(t, card.Back, got.Back)
		assert.Equal(t, card.Subject, got.Subject)
		assert.Equal(t, card.Topic, got.Topic)
		assert.Equal(t, card.Difficulty, got.Difficulty)
	}
}

func TestRecordAnswerDoesNotMutateInput(t *testing.T) {
	now := time.UnixMilli(5000)
	prev := int64(1000)
	card := Card{ID: "x", Difficulty: Hard, LastReviewed: &prev, NextReview: 2000}

	_ = RecordAnswer(card, true, now)

	assert.Equal(t, int64(1000), *card.LastReviewed)
	assert.Equal(t, int64(2000), card.NextReview)
	assert.Zero(t, card.CorrectCount)
}

func TestRecordAnswerDeterministic(t *testing.T) {
	now := time.UnixMilli(123456789)
	card := Card{ID: "d", Difficulty: Medium}
	assert.Equal(t, RecordAnswer(card, false, now), RecordAnswer(card, false, now))
}

func TestIsDue(t *testing.T) {
	card := Card{NextReview: 1000}
	assert.False(t, IsDue(card, time.UnixMilli(999)))
	assert.True(t, IsDue(card, time.UnixMilli(1000)))
	assert.True(t, IsDue(card, time.UnixMilli(1001)))
}

func TestDueCount(t *testing.T) {
	now := time.UnixMilli(10_000)
	cards := []Card{
		{ID: "a", NextReview: 0},
		{ID: "b", NextReview: 10_000},
		{ID: "c", NextReview: 10_001},
	}
	assert.Equal(t, 2, DueCount(cards, now))
	assert.Equal(t, 0, DueCount(nil, now))
}

func TestNextIndexRoundRobin(t *testing.T) {
	assert.Equal(t, 1, NextIndex(0, 3))
	assert.Equal(t, 2, NextIndex(1, 3))
	assert.Equal(t, 0, NextIndex(2, 3))
	assert.Equal(t, 0, NextIndex(0, 1))
	assert.Equal(t, 0, NextIndex(0, 0))
	assert.Equal(t, 0, NextIndex(7, 3))
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0, Accuracy(nil))
	assert.Equal(t, 67, Accuracy([]Card{{CorrectCount: 2, IncorrectCount: 1}}))
	assert.Equal(t, 50, Accuracy([]Card{{CorrectCount: 1}, {IncorrectCount: 1}}))
}

func TestReplace(t *testing.T) {
	cards := []Card{{ID: "a"}, {ID: "b"}}
	out := Replace(cards, Card{ID: "b", CorrectCount: 1})

	assert.Equal(t, 1, out[1].CorrectCount)
	assert.Zero(t, cards[1].CorrectCount)

	same := Replace(cards, Card{ID: "zzz", CorrectCount: 9})
	assert.Equal(t, cards, same)
}

func TestDifficultyString(t *testing.T) {
	assert.Equal(t, "Easy", Easy.String())
	assert.Equal(t, "Medium", Medium.String())
	assert.Equal(t, "Hard", Hard.String())
	assert.Equal(t, "Unknown", Difficulty(7).String())
	assert.True(t, Hard.Valid())
	assert.False(t, Difficulty(0).Valid())
}

func TestNewCardDueImmediately(t *testing.T) {
	now := time.UnixMilli(42_000)
	c := NewCard("n", "f", "b", "s", "t", Easy, now)
	assert.True(t, IsDue(c, now))
	assert.False(t, c.Reviewed())
	_, ok := c.LastReviewedTime()
	assert.False(t, ok)
	assert.Equal(t, now, c.NextReviewTime())
}
