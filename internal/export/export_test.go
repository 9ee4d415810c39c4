package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/studyr/internal/pomodoro"
	"github.com/sadopc/studyr/internal/review"
	"github.com/sadopc/studyr/internal/stats"
	"github.com/sadopc/studyr/internal/store"
	"github.com/sadopc/studyr/internal/syllabus"
)

var sampleNow = time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)

func sampleCards() []review.Card {
	fresh := review.NewCard("1", "What is 2+2?", "4", "Mathematics", "Arithmetic", review.Easy, sampleNow)
	reviewed := review.NewCard("2", "Capital of France?", "Paris", "Geography", "Europe", review.Medium, sampleNow)
	reviewed = review.RecordAnswer(reviewed, true, sampleNow)
	missed := review.NewCard("3", "Planck constant?", "6.626e-34 J·s", "Physics", "Quantum", review.Hard, sampleNow)
	missed = review.RecordAnswer(missed, false, sampleNow)
	return []review.Card{fresh, reviewed, missed}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	return records
}

// ============================================================
// CSV
// ============================================================

func TestCardsToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.csv")

	if err := CardsToCSV(sampleCards(), path); err != nil {
		t.Fatalf("CardsToCSV: %v", err)
	}

	records := readCSV(t, path)

	// header + 3 data rows
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	header := records[0]
	expectedHeader := []string{
		"ID", "Subject", "Topic", "Front", "Back", "Difficulty",
		"Last Reviewed", "Next Review", "Correct", "Incorrect",
	}
	for i, h := range expectedHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	row := records[1]
	if row[0] != "1" {
		t.Fatalf("ID = %q, want 1", row[0])
	}
	if row[1] != "Mathematics" || row[2] != "Arithmetic" {
		t.Fatalf("subject/topic = %q/%q", row[1], row[2])
	}
	if row[5] != "Easy" {
		t.Fatalf("Difficulty = %q, want Easy", row[5])
	}
	if row[6] != "" {
		t.Fatalf("never reviewed card should have empty Last Reviewed, got %q", row[6])
	}
	if _, err := time.Parse(time.RFC3339, row[7]); err != nil {
		t.Fatalf("Next Review is not RFC3339: %q", row[7])
	}

	reviewed := records[2]
	if reviewed[6] == "" {
		t.Fatal("reviewed card should have Last Reviewed")
	}
	if reviewed[8] != "1" || reviewed[9] != "0" {
		t.Fatalf("counters = %s/%s, want 1/0", reviewed[8], reviewed[9])
	}

	missed := records[3]
	if missed[8] != "0" || missed[9] != "1" {
		t.Fatalf("counters = %s/%s, want 0/1", missed[8], missed[9])
	}
}

func TestCardsToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := CardsToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, path)
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestCardsToCSVBadPath(t *testing.T) {
	err := CardsToCSV(nil, "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestCardsToCSVSpecialCharacters(t *testing.T) {
	c := review.NewCard("x", `Say "hello", then wave`, "line one\nline two", `Lang "A"`, "", review.Medium, sampleNow)
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := CardsToCSV([]review.Card{c}, path); err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, path)
	if records[1][3] != `Say "hello", then wave` {
		t.Fatalf("front mangled: %q", records[1][3])
	}
	if records[1][4] != "line one\nline two" {
		t.Fatalf("back mangled: %q", records[1][4])
	}
	if records[1][1] != `Lang "A"` {
		t.Fatalf("subject mangled: %q", records[1][1])
	}
}

// ============================================================
// JSON
// ============================================================

func sampleSnapshot() store.Snapshot {
	forest := []syllabus.Node{{
		ID: "1", Title: "Math", Type: syllabus.TypeSubject,
		Children: []syllabus.Node{
			{ID: "1-1", Title: "Algebra", Type: syllabus.TypeTopic, Completed: true},
			{ID: "1-2", Title: "Geometry", Type: syllabus.TypeTopic},
		},
	}}
	sessions := []stats.Session{stats.NewFocusSession("s1", "Math", 25, sampleNow)}
	return store.Snapshot{
		Syllabus:   forest,
		Flashcards: sampleCards(),
		Sessions:   sessions,
		Stats:      stats.Compute(sessions, forest, 600, sampleNow),
		Settings:   pomodoro.Settings{WorkDuration: 50, BreakDuration: 10},
		WeeklyGoal: 600,
	}
}

func TestSnapshotToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	if err := SnapshotToJSON(sampleSnapshot(), path); err != nil {
		t.Fatalf("SnapshotToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Version != store.EnvelopeVersion {
		t.Fatalf("version = %d, want %d", result.Version, store.EnvelopeVersion)
	}
	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}
	if len(result.Syllabus) != 1 || len(result.Syllabus[0].Children) != 2 {
		t.Fatalf("syllabus not exported intact: %+v", result.Syllabus)
	}
	if len(result.Flashcards) != 3 {
		t.Fatalf("flashcards = %d, want 3", len(result.Flashcards))
	}
	if len(result.Sessions) != 1 || result.Sessions[0].Duration != 25 {
		t.Fatalf("sessions = %+v", result.Sessions)
	}
	if result.Stats.TodayMinutes != 25 || result.Stats.CompletedTopics != 1 {
		t.Fatalf("stats = %+v", result.Stats)
	}
	want := jsonSettings{WorkDuration: 50, BreakDuration: 10, WeeklyGoalMinutes: 600}
	if result.Settings != want {
		t.Fatalf("settings = %+v, want %+v", result.Settings, want)
	}
}

func TestSnapshotToJSONKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.json")
	if err := SnapshotToJSON(sampleSnapshot(), path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"exported_at", "version", "syllabus", "flashcards", "sessions", "stats", "settings"} {
		if _, ok := raw[k]; !ok {
			t.Errorf("missing key %q", k)
		}
	}

	// Cards keep their persisted camelCase field names.
	if !strings.Contains(string(raw["flashcards"]), `"nextReview"`) {
		t.Fatal("flashcards should use the persisted field names")
	}
}

func TestSnapshotToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := SnapshotToJSON(store.Snapshot{}, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	for _, want := range []string{`"syllabus": []`, `"flashcards": []`, `"sessions": []`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("empty export should contain %s, got:\n%s", want, data)
		}
	}
}

func TestSnapshotToJSONBadPath(t *testing.T) {
	err := SnapshotToJSON(store.Snapshot{}, "/nonexistent/dir/file.json")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestSnapshotToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	if err := SnapshotToJSON(store.Snapshot{}, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	// Pretty-printed JSON should contain newlines and indentation
	if !strings.Contains(string(data), "\n") {
		t.Fatal("JSON should be pretty-printed with newlines")
	}
	if !strings.Contains(string(data), "  ") {
		t.Fatal("JSON should be indented with spaces")
	}
}
