package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/studyr/internal/review"
)

// CardsToCSV writes the flashcard deck as CSV, one row per card.
func CardsToCSV(cards []review.Card, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{
		"ID", "Subject", "Topic", "Front", "Back", "Difficulty",
		"Last Reviewed", "Next Review", "Correct", "Incorrect",
	}); err != nil {
		return err
	}

	for _, c := range cards {
		lastStr := ""
		if t, ok := c.LastReviewedTime(); ok {
			lastStr = formatTime(t)
		}

		row := []string{
			c.ID,
			c.Subject,
			c.Topic,
			c.Front,
			c.Back,
			c.Difficulty.String(),
			lastStr,
			formatTime(c.NextReviewTime()),
			strconv.Itoa(c.CorrectCount),
			strconv.Itoa(c.IncorrectCount),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatTime(t time.Time) string {
	return t.Local().Format(time.RFC3339)
}
