// Package stats aggregates logged study sessions into the numbers shown on
// the dashboard and analytics views.
package stats

import (
	"sort"
	"time"

	"github.com/sadopc/studyr/internal/syllabus"
)

// SessionType classifies a logged session.
type SessionType string

const (
	SessionFocus     SessionType = "focus"
	SessionBreak     SessionType = "break"
	SessionFlashcard SessionType = "flashcard"
	SessionNote      SessionType = "note"
)

// Session is one logged block of study time.
type Session struct {
	ID       string      `json:"id"`
	Date     int64       `json:"date"`     // epoch ms
	Duration int         `json:"duration"` // minutes
	Subject  string      `json:"subject"`
	Topic    string      `json:"topic,omitempty"`
	Type     SessionType `json:"type"`
}

// NewFocusSession records minutes of focused work finished at at.
func NewFocusSession(id, subject string, minutes int, at time.Time) Session {
	return Session{
		ID:       id,
		Date:     at.UnixMilli(),
		Duration: minutes,
		Subject:  subject,
		Type:     SessionFocus,
	}
}

// Time returns the session timestamp.
func (s Session) Time() time.Time {
	return time.UnixMilli(s.Date)
}

// StudyStats is the persisted dashboard summary.
type StudyStats struct {
	TodayMinutes         int `json:"todayMinutes"`
	Streak               int `json:"streak"`
	WeeklyGoal           int `json:"weeklyGoal"` // percent of the weekly target
	CompletedTopics      int `json:"completedTopics"`
	TotalSessions        int `json:"totalSessions"`
	AverageSessionLength int `json:"averageSessionLength"`
}

// Compute derives StudyStats from focus sessions and the syllabus. Calendar
// days are taken in now's location; weeks start on Monday.
func Compute(sessions []Session, forest []syllabus.Node, weeklyGoalMinutes int, now time.Time) StudyStats {
	loc := now.Location()
	today := dayStart(now)
	weekStart := today.AddDate(0, 0, -mondayOffset(today))

	perDay := make(map[time.Time]int)
	var st StudyStats
	var total, week int
	for _, s := range sessions {
		if s.Type != SessionFocus {
			continue
		}
		st.TotalSessions++
		total += s.Duration

		d := dayStart(s.Time().In(loc))
		perDay[d] += s.Duration
		if !d.Before(weekStart) && !d.After(today) {
			week += s.Duration
		}
	}

	st.TodayMinutes = perDay[today]
	st.Streak = streak(perDay, today)
	if st.TotalSessions > 0 {
		st.AverageSessionLength = (total*2 + st.TotalSessions) / (st.TotalSessions * 2)
	}
	if weeklyGoalMinutes > 0 {
		pct := (week*200 + weeklyGoalMinutes) / (weeklyGoalMinutes * 2)
		if pct > 100 {
			pct = 100
		}
		st.WeeklyGoal = pct
	}
	st.CompletedTopics, _ = syllabus.Leaves(forest)
	return st
}

// streak counts consecutive days with focus time ending today, or ending
// yesterday when nothing has been logged today yet.
func streak(perDay map[time.Time]int, today time.Time) int {
	d := today
	if perDay[d] == 0 {
		d = d.AddDate(0, 0, -1)
	}
	n := 0
	for perDay[d] > 0 {
		n++
		d = d.AddDate(0, 0, -1)
	}
	return n
}

// DayTotal is the focus time logged on one calendar day.
type DayTotal struct {
	Day     time.Time
	Minutes int
}

// Daily returns focus minutes for each of the last days days, oldest first,
// ending with end's calendar day.
func Daily(sessions []Session, end time.Time, days int) []DayTotal {
	if days <= 0 {
		return nil
	}
	loc := end.Location()
	last := dayStart(end)
	first := last.AddDate(0, 0, -(days - 1))

	out := make([]DayTotal, days)
	for i := range out {
		out[i].Day = first.AddDate(0, 0, i)
	}
	for _, s := range sessions {
		if s.Type != SessionFocus {
			continue
		}
		d := dayStart(s.Time().In(loc))
		if d.Before(first) || d.After(last) {
			continue
		}
		for i := range out {
			if out[i].Day.Equal(d) {
				out[i].Minutes += s.Duration
				break
			}
		}
	}
	return out
}

// SubjectTotal is the focus time logged for one subject.
type SubjectTotal struct {
	Subject string
	Minutes int
}

// BySubject totals focus minutes per subject, largest first.
func BySubject(sessions []Session) []SubjectTotal {
	sums := make(map[string]int)
	for _, s := range sessions {
		if s.Type != SessionFocus {
			continue
		}
		name := s.Subject
		if name == "" {
			name = "General"
		}
		sums[name] += s.Duration
	}
	out := make([]SubjectTotal, 0, len(sums))
	for k, v := range sums {
		out = append(out, SubjectTotal{Subject: k, Minutes: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Minutes != out[j].Minutes {
			return out[i].Minutes > out[j].Minutes
		}
		return out[i].Subject < out[j].Subject
	})
	return out
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func mondayOffset(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return wd - 1
}
