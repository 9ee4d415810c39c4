package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/studyr/internal/review"
	"github.com/sadopc/studyr/internal/stats"
	"github.com/sadopc/studyr/internal/store"
	"github.com/sadopc/studyr/internal/syllabus"
)

type jsonExport struct {
	ExportedAt string           `json:"exported_at"`
	Version    int              `json:"version"`
	Syllabus   []syllabus.Node  `json:"syllabus"`
	Flashcards []review.Card    `json:"flashcards"`
	Sessions   []stats.Session  `json:"sessions"`
	Stats      stats.StudyStats `json:"stats"`
	Settings   jsonSettings     `json:"settings"`
}

type jsonSettings struct {
	WorkDuration      int `json:"workDuration"`
	BreakDuration     int `json:"breakDuration"`
	WeeklyGoalMinutes int `json:"weeklyGoalMinutes"`
}

// SnapshotToJSON writes everything the app persists as one indented JSON
// document.
func SnapshotToJSON(snap store.Snapshot, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Version:    store.EnvelopeVersion,
		Syllabus:   nonNil(snap.Syllabus),
		Flashcards: nonNil(snap.Flashcards),
		Sessions:   nonNil(snap.Sessions),
		Stats:      snap.Stats,
		Settings: jsonSettings{
			WorkDuration:      snap.Settings.WorkDuration,
			BreakDuration:     snap.Settings.BreakDuration,
			WeeklyGoalMinutes: snap.WeeklyGoal,
		},
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// nonNil keeps empty collections as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
