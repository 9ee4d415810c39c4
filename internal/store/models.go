package store

import (
	"github.com/sadopc/studyr/internal/pomodoro"
	"github.com/sadopc/studyr/internal/review"
	"github.com/sadopc/studyr/internal/stats"
	"github.com/sadopc/studyr/internal/syllabus"
)

// Storage keys.
const (
	KeySyllabus         = "syllabus"
	KeyFlashcards       = "flashcards"
	KeyStudyStats       = "studyStats"
	KeyStudySessions    = "studySessions"
	KeyPomodoroSettings = "pomodoroSettings"
	KeyWeeklyGoal       = "weeklyGoalMinutes"

	// Read only; superseded by KeyPomodoroSettings.
	keyLegacyTimerSettings = "timerSettings"
)

var appKeys = []string{
	KeySyllabus,
	KeyFlashcards,
	KeyStudyStats,
	KeyStudySessions,
	KeyPomodoroSettings,
	KeyWeeklyGoal,
	keyLegacyTimerSettings,
}

// Snapshot is everything the app persists, loaded at once.
type Snapshot struct {
	Syllabus   []syllabus.Node
	Flashcards []review.Card
	Sessions   []stats.Session
	Stats      stats.StudyStats
	Settings   pomodoro.Settings
	WeeklyGoal int
}
