package store

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/studyr/internal/logging"
	"github.com/sadopc/studyr/internal/pomodoro"
	"github.com/sadopc/studyr/internal/review"
	"github.com/sadopc/studyr/internal/stats"
	"github.com/sadopc/studyr/internal/syllabus"
)

type stubClock struct{ now time.Time }

func (c *stubClock) Now() time.Time { return c.now }

type seqIDs struct{ n int }

func (g *seqIDs) New() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

// failingKV reads from an inner store but rejects every write.
type failingKV struct {
	KV
}

func (f failingKV) Set(string, []byte) error { return errors.New("disk full") }
func (f failingKV) Delete(string) error      { return errors.New("disk full") }

var testNow = time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T, kv KV) (*Repo, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	r := NewRepo(kv, logging.New(&logs, slog.LevelDebug), &stubClock{now: testNow}, &seqIDs{}, 600)
	return r, &logs
}

// ============================================================
// Defaults and fallbacks
// ============================================================

func TestRepoDefaults(t *testing.T) {
	r, logs := newTestRepo(t, newTestStore(t))

	forest := r.Syllabus()
	if len(forest) != 3 || forest[0].ID != "1" {
		t.Fatalf("expected starter syllabus, got %d roots", len(forest))
	}
	cards := r.Flashcards()
	if len(cards) != 3 {
		t.Fatalf("expected 3 starter cards, got %d", len(cards))
	}
	if review.DueCount(cards, testNow) != 3 {
		t.Fatal("starter cards should be due now")
	}
	if len(r.Sessions()) != 0 {
		t.Fatal("expected no sessions")
	}
	if r.Stats() != (stats.StudyStats{}) {
		t.Fatalf("expected zero stats, got %+v", r.Stats())
	}
	if r.PomodoroSettings() != pomodoro.DefaultSettings() {
		t.Fatalf("expected default settings, got %+v", r.PomodoroSettings())
	}
	if r.WeeklyGoal() != 600 {
		t.Fatalf("expected configured weekly goal 600, got %d", r.WeeklyGoal())
	}
	if strings.Contains(logs.String(), "WARN") {
		t.Fatalf("missing keys should not warn:\n%s", logs.String())
	}
}

func TestRepoCorruptFallsBack(t *testing.T) {
	kv := newTestStore(t)
	r, logs := newTestRepo(t, kv)

	kv.Set(KeySyllabus, []byte(`{not json`))
	kv.Set(KeyFlashcards, []byte(`{"version":1,"data":"oops"}`))
	kv.Set(KeyStudySessions, []byte(`[{"id":"a","duration":"x","type":"focus","subject":"Math"}]`))
	kv.Set(KeyStudyStats, []byte(`{"version":1,"data":{"streak":4,"todayMinutes":"lots"}}`))

	if len(r.Syllabus()) != 3 {
		t.Fatal("corrupt syllabus should fall back to the starter syllabus")
	}
	if len(r.Flashcards()) != 3 {
		t.Fatal("corrupt flashcards should fall back to the starter deck")
	}
	if got := r.Sessions(); len(got) != 0 {
		t.Fatalf("corrupt sessions should fall back to none, got %+v", got)
	}
	if got := r.Stats(); got != (stats.StudyStats{}) {
		t.Fatalf("corrupt stats should fall back to zero, got %+v", got)
	}
	if n := strings.Count(logs.String(), "corrupt value, using defaults"); n != 4 {
		t.Fatalf("expected 4 warnings, got %d:\n%s", n, logs.String())
	}
}

func TestRecordFocusSessionDropsCorruptLog(t *testing.T) {
	kv := newTestStore(t)
	r, _ := newTestRepo(t, kv)

	kv.Set(KeyStudySessions, []byte(`[{"id":"a","duration":"x","type":"focus","subject":"Math"}]`))

	s, err := r.RecordFocusSession("Physics", 25)
	if err != nil {
		t.Fatal(err)
	}
	sessions := r.Sessions()
	if len(sessions) != 1 || sessions[0].ID != s.ID {
		t.Fatalf("expected only the new session, got %+v", sessions)
	}
	raw, _ := kv.Get(KeyStudySessions)
	if strings.Contains(string(raw), `"date":0`) {
		t.Fatalf("partly decoded session written back: %s", raw)
	}
}

func TestRepoLegacyValues(t *testing.T) {
	kv := newTestStore(t)
	r, _ := newTestRepo(t, kv)

	kv.Set(KeySyllabus, []byte(`[{"id":"x","title":"X","type":"subject","completed":true}]`))
	kv.Set(keyLegacyTimerSettings, []byte(`{"focusTime":50,"breakTime":10}`))

	forest := r.Syllabus()
	if len(forest) != 1 || !forest[0].Completed {
		t.Fatalf("legacy syllabus not read: %+v", forest)
	}
	s := r.PomodoroSettings()
	if s.WorkDuration != 50 || s.BreakDuration != 10 {
		t.Fatalf("legacy timer settings not read: %+v", s)
	}

	// New settings win over the legacy key.
	r.SavePomodoroSettings(pomodoro.Settings{WorkDuration: 30, BreakDuration: 6})
	if got := r.PomodoroSettings(); got.WorkDuration != 30 {
		t.Fatalf("expected saved settings to win, got %+v", got)
	}
}

func TestRepoInvalidSettingsFallBack(t *testing.T) {
	kv := newTestStore(t)
	r, logs := newTestRepo(t, kv)

	kv.Set(KeyPomodoroSettings, []byte(`{"version":1,"data":{"workDuration":0,"breakDuration":5}}`))
	if r.PomodoroSettings() != pomodoro.DefaultSettings() {
		t.Fatal("invalid settings should fall back to defaults")
	}
	if !strings.Contains(logs.String(), "invalid pomodoro settings") {
		t.Fatalf("expected warning, got:\n%s", logs.String())
	}

	if err := r.SavePomodoroSettings(pomodoro.Settings{WorkDuration: 500, BreakDuration: 5}); err == nil {
		t.Fatal("expected validation error")
	}
}

// ============================================================
// Writes
// ============================================================

func TestRepoRoundTrip(t *testing.T) {
	backends(t, func(t *testing.T, kv KV) {
		r, _ := newTestRepo(t, kv)

		forest := syllabus.ToggleLeaf(r.Syllabus(), "1-1-1-3")
		if err := r.SaveSyllabus(forest); err != nil {
			t.Fatal(err)
		}
		n, _ := syllabus.Find(r.Syllabus(), "1-1-1-3")
		if !n.Completed {
			t.Fatal("toggled leaf not persisted")
		}

		cards := r.Flashcards()
		cards = review.Replace(cards, review.RecordAnswer(cards[0], true, testNow))
		r.SaveFlashcards(cards)
		got := r.Flashcards()[0]
		if got.CorrectCount != 1 || got.LastReviewed == nil {
			t.Fatalf("answer not persisted: %+v", got)
		}

		raw, _ := kv.Get(KeyFlashcards)
		if !bytes.HasPrefix(raw, []byte(`{"version":1,"data":[`)) {
			t.Fatalf("expected versioned envelope, got %s", raw[:30])
		}
	})
}

func TestRepoWriteFailureLogged(t *testing.T) {
	r, logs := newTestRepo(t, failingKV{KV: newTestStore(t)})

	err := r.SaveSyllabus(r.Syllabus())
	if err == nil {
		t.Fatal("expected write error")
	}
	if !strings.Contains(logs.String(), "ERROR\twrite failed") {
		t.Fatalf("expected error log, got:\n%s", logs.String())
	}

	// Reads still work.
	if len(r.Syllabus()) != 3 {
		t.Fatal("reads should keep returning defaults")
	}
	if err := r.Reset(); err == nil {
		t.Fatal("expected reset error")
	}
}

func TestRecordFocusSession(t *testing.T) {
	r, _ := newTestRepo(t, newTestStore(t))

	s, err := r.RecordFocusSession("Physics", 25)
	if err != nil {
		t.Fatal(err)
	}
	if s.ID != "id-1" || s.Type != stats.SessionFocus || s.Date != testNow.UnixMilli() {
		t.Fatalf("unexpected session %+v", s)
	}
	r.RecordFocusSession("Physics", 25)

	if len(r.Sessions()) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(r.Sessions()))
	}
	st := r.Stats()
	if st.TodayMinutes != 50 || st.TotalSessions != 2 || st.Streak != 1 {
		t.Fatalf("stats not refreshed: %+v", st)
	}
	// 50 of 600 minutes is 8%.
	if st.WeeklyGoal != 8 {
		t.Fatalf("expected weekly goal 8%%, got %d", st.WeeklyGoal)
	}
	if st.CompletedTopics != 3 {
		t.Fatalf("expected 3 completed topics, got %d", st.CompletedTopics)
	}
}

func TestWeeklyGoal(t *testing.T) {
	r, _ := newTestRepo(t, newTestStore(t))
	if err := r.SaveWeeklyGoal(120); err != nil {
		t.Fatal(err)
	}
	if r.WeeklyGoal() != 120 {
		t.Fatalf("expected 120, got %d", r.WeeklyGoal())
	}
	if err := r.SaveWeeklyGoal(-1); err == nil {
		t.Fatal("expected error for negative goal")
	}
}

func TestAddCard(t *testing.T) {
	r, _ := newTestRepo(t, newTestStore(t))
	c, err := r.AddCard("Q", "A", "Math", "Sets", review.Hard)
	if err != nil {
		t.Fatal(err)
	}
	cards := r.Flashcards()
	if len(cards) != 4 || cards[3].ID != c.ID || cards[3].Difficulty != review.Hard {
		t.Fatalf("card not appended: %+v", cards)
	}
}

func TestAddCardRejectsInvalidDifficulty(t *testing.T) {
	r, _ := newTestRepo(t, newTestStore(t))
	if _, err := r.AddCard("Q", "A", "Math", "Sets", review.Difficulty(7)); err == nil {
		t.Fatal("expected an error for difficulty 7")
	}
	if len(r.Flashcards()) != 3 {
		t.Fatal("invalid card should not be saved")
	}
}

// ============================================================
// Templates and reset
// ============================================================

func TestApplyTemplate(t *testing.T) {
	r, _ := newTestRepo(t, newTestStore(t))

	tpl, err := r.ApplyTemplate("JEE")
	if err != nil {
		t.Fatal(err)
	}
	if tpl.ID != "jee" {
		t.Fatalf("expected jee, got %s", tpl.ID)
	}
	forest := r.Syllabus()
	if len(forest) != 3 || forest[0].ID != "jee-physics" {
		t.Fatalf("syllabus not replaced: %d roots", len(forest))
	}
	if len(r.Flashcards()) != 5 {
		t.Fatalf("expected 3 starter + 2 sample cards, got %d", len(r.Flashcards()))
	}

	// Applying again does not duplicate cards.
	r.ApplyTemplate("jee")
	if len(r.Flashcards()) != 5 {
		t.Fatalf("expected 5 cards after reapply, got %d", len(r.Flashcards()))
	}
	if r.Stats().CompletedTopics != 0 {
		t.Fatal("fresh template should have no completed topics")
	}
}

func TestApplyTemplateUnknown(t *testing.T) {
	r, _ := newTestRepo(t, newTestStore(t))
	_, err := r.ApplyTemplate("sat")
	if err == nil || !strings.Contains(err.Error(), "gmat, jee, programming") {
		t.Fatalf("expected unknown template error, got %v", err)
	}
}

func TestReset(t *testing.T) {
	kv := newTestStore(t)
	r, _ := newTestRepo(t, kv)

	r.ApplyTemplate("gmat")
	r.RecordFocusSession("GMAT", 25)
	kv.Set("unrelated", []byte("keep"))

	if err := r.Reset(); err != nil {
		t.Fatal(err)
	}
	keys, _ := kv.Keys()
	if len(keys) != 1 || keys[0] != "unrelated" {
		t.Fatalf("expected only unrelated key left, got %v", keys)
	}
	if r.Syllabus()[0].ID != "1" {
		t.Fatal("expected starter syllabus after reset")
	}
}

func TestSnapshot(t *testing.T) {
	r, _ := newTestRepo(t, newTestStore(t))
	r.RecordFocusSession("Math", 30)
	snap := r.Snapshot()
	if len(snap.Syllabus) != 3 || len(snap.Flashcards) != 3 || len(snap.Sessions) != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.Stats.TotalSessions != 1 || snap.WeeklyGoal != 600 {
		t.Fatalf("unexpected snapshot stats %+v", snap.Stats)
	}
	if snap.Settings != pomodoro.DefaultSettings() {
		t.Fatalf("unexpected settings %+v", snap.Settings)
	}
}
