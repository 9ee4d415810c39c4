package store

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/studyr/internal/dataset"
	"github.com/sadopc/studyr/internal/pomodoro"
	"github.com/sadopc/studyr/internal/review"
	"github.com/sadopc/studyr/internal/stats"
	"github.com/sadopc/studyr/internal/syllabus"
)

// Clock abstracts time retrieval so repository logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts unique ID generation.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }

// Repo maps app state onto KV documents.
//
// Reads never fail: a missing key yields the built-in default, and an
// unreadable or corrupt value is logged at warn level before falling back.
// Writes log failures at error level and return them; callers are free to
// ignore the error and keep their in-memory state.
type Repo struct {
	kv         KV
	log        *slog.Logger
	clock      Clock
	ids        IDGenerator
	weeklyGoal int
}

// NewRepo wraps kv. weeklyGoal is the default weekly target in minutes, used
// until the user saves one.
func NewRepo(kv KV, logger *slog.Logger, clock Clock, ids IDGenerator, weeklyGoal int) *Repo {
	return &Repo{kv: kv, log: logger, clock: clock, ids: ids, weeklyGoal: weeklyGoal}
}

// NewID returns a fresh identifier for cards and sessions.
func (r *Repo) NewID() string {
	return r.ids.New()
}

// Now returns the repository clock's time.
func (r *Repo) Now() time.Time {
	return r.clock.Now()
}

// load decodes key into v and reports whether a stored value was used.
func (r *Repo) load(key string, v any) bool {
	raw, err := r.kv.Get(key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		r.log.Warn("read failed, using defaults", "key", key, "error", err)
		return false
	}
	if _, err := decode(raw, v); err != nil {
		r.log.Warn("corrupt value, using defaults", "key", key, "error", err)
		return false
	}
	return true
}

func (r *Repo) save(key string, v any) error {
	data, err := encode(v)
	if err == nil {
		err = r.kv.Set(key, data)
	}
	if err != nil {
		r.log.Error("write failed", "key", key, "error", err)
		return fmt.Errorf("save %s: %w", key, err)
	}
	r.log.Debug("saved", "key", key, "bytes", len(data))
	return nil
}

// Syllabus returns the stored syllabus or the starter one.
func (r *Repo) Syllabus() []syllabus.Node {
	var forest []syllabus.Node
	if !r.load(KeySyllabus, &forest) {
		return dataset.Syllabus()
	}
	return forest
}

func (r *Repo) SaveSyllabus(forest []syllabus.Node) error {
	return r.save(KeySyllabus, forest)
}

// Flashcards returns the stored deck or the starter deck.
func (r *Repo) Flashcards() []review.Card {
	var cards []review.Card
	if !r.load(KeyFlashcards, &cards) {
		return dataset.Flashcards(r.clock.Now())
	}
	return cards
}

func (r *Repo) SaveFlashcards(cards []review.Card) error {
	return r.save(KeyFlashcards, cards)
}

// Sessions returns the logged study sessions, oldest first.
func (r *Repo) Sessions() []stats.Session {
	var sessions []stats.Session
	if !r.load(KeyStudySessions, &sessions) {
		return nil
	}
	return sessions
}

func (r *Repo) SaveSessions(sessions []stats.Session) error {
	return r.save(KeyStudySessions, sessions)
}

// Stats returns the last saved summary.
func (r *Repo) Stats() stats.StudyStats {
	var st stats.StudyStats
	if !r.load(KeyStudyStats, &st) {
		return stats.StudyStats{}
	}
	return st
}

func (r *Repo) SaveStats(st stats.StudyStats) error {
	return r.save(KeyStudyStats, st)
}

// PomodoroSettings returns the saved timer durations. Settings stored under
// the old timerSettings key are honored until new ones are saved. Out of
// range values fall back to the defaults.
func (r *Repo) PomodoroSettings() pomodoro.Settings {
	var s pomodoro.Settings
	key := KeyPomodoroSettings
	if !r.load(key, &s) {
		key = keyLegacyTimerSettings
		if !r.load(key, &s) {
			return pomodoro.DefaultSettings()
		}
	}
	if err := s.Validate(); err != nil {
		r.log.Warn("invalid pomodoro settings, using defaults", "key", key, "error", err)
		return pomodoro.DefaultSettings()
	}
	return s
}

func (r *Repo) SavePomodoroSettings(s pomodoro.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return r.save(KeyPomodoroSettings, s)
}

// WeeklyGoal returns the weekly study target in minutes.
func (r *Repo) WeeklyGoal() int {
	var minutes int
	if !r.load(KeyWeeklyGoal, &minutes) || minutes < 0 {
		return r.weeklyGoal
	}
	return minutes
}

func (r *Repo) SaveWeeklyGoal(minutes int) error {
	if minutes < 0 {
		return fmt.Errorf("weekly goal must not be negative, got %d", minutes)
	}
	return r.save(KeyWeeklyGoal, minutes)
}

// RefreshStats recomputes the summary from sessions and syllabus and saves it.
func (r *Repo) RefreshStats() stats.StudyStats {
	st := stats.Compute(r.Sessions(), r.Syllabus(), r.WeeklyGoal(), r.clock.Now())
	_ = r.SaveStats(st)
	return st
}

// RecordFocusSession appends a completed focus block and refreshes the stats.
func (r *Repo) RecordFocusSession(subject string, minutes int) (stats.Session, error) {
	s := stats.NewFocusSession(r.ids.New(), subject, minutes, r.clock.Now())
	sessions := append(r.Sessions(), s)
	if err := r.SaveSessions(sessions); err != nil {
		return s, err
	}
	r.RefreshStats()
	return s, nil
}

// AddCard appends a new card due now.
func (r *Repo) AddCard(front, back, subject, topic string, d review.Difficulty) (review.Card, error) {
	if !d.Valid() {
		return review.Card{}, fmt.Errorf("invalid difficulty %d", d)
	}
	c := review.NewCard(r.ids.New(), front, back, subject, topic, d, r.clock.Now())
	return c, r.SaveFlashcards(append(r.Flashcards(), c))
}

// ApplyTemplate replaces the syllabus with the named exam template and adds
// its sample cards that are not already in the deck.
func (r *Repo) ApplyTemplate(name string) (dataset.Template, error) {
	tpl, ok := dataset.Lookup(name)
	if !ok {
		return tpl, fmt.Errorf("unknown template %q (want one of %s)", name, strings.Join(dataset.TemplateNames(), ", "))
	}

	if err := r.SaveSyllabus(tpl.Forest()); err != nil {
		return tpl, err
	}

	cards := r.Flashcards()
	have := make(map[string]bool, len(cards))
	for _, c := range cards {
		have[c.ID] = true
	}
	for _, c := range tpl.Cards(r.clock.Now()) {
		if !have[c.ID] {
			cards = append(cards, c)
		}
	}
	if err := r.SaveFlashcards(cards); err != nil {
		return tpl, err
	}
	r.RefreshStats()
	r.log.Info("applied template", "template", tpl.ID)
	return tpl, nil
}

// Reset deletes every app key so the next load returns defaults.
func (r *Repo) Reset() error {
	var errs []error
	for _, k := range appKeys {
		if err := r.kv.Delete(k); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		r.log.Error("reset failed", "error", err)
		return err
	}
	r.log.Info("reset all data")
	return nil
}

// Snapshot loads everything at once.
func (r *Repo) Snapshot() Snapshot {
	return Snapshot{
		Syllabus:   r.Syllabus(),
		Flashcards: r.Flashcards(),
		Sessions:   r.Sessions(),
		Stats:      r.Stats(),
		Settings:   r.PomodoroSettings(),
		WeeklyGoal: r.WeeklyGoal(),
	}
}
