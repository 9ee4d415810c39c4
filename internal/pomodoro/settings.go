package pomodoro

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
	MaxMinutes          = 240
)

var validate = validator.New()

// Settings holds the persisted timer durations in minutes.
type Settings struct {
	WorkDuration  int `json:"workDuration" validate:"min=1,max=240"`
	BreakDuration int `json:"breakDuration" validate:"min=1,max=240"`
}

// DefaultSettings returns the 25/5 classic.
func DefaultSettings() Settings {
	return Settings{WorkDuration: DefaultWorkMinutes, BreakDuration: DefaultBreakMinutes}
}

// Validate checks both durations are within 1..MaxMinutes.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid pomodoro settings: %w", err)
	}
	return nil
}

// UnmarshalJSON also accepts the older {focusTime, breakTime} shape.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw struct {
		WorkDuration  *int `json:"workDuration"`
		BreakDuration *int `json:"breakDuration"`
		FocusTime     *int `json:"focusTime"`
		BreakTime     *int `json:"breakTime"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Settings{}
	switch {
	case raw.WorkDuration != nil:
		s.WorkDuration = *raw.WorkDuration
	case raw.FocusTime != nil:
		s.WorkDuration = *raw.FocusTime
	}
	switch {
	case raw.BreakDuration != nil:
		s.BreakDuration = *raw.BreakDuration
	case raw.BreakTime != nil:
		s.BreakDuration = *raw.BreakTime
	}
	return nil
}

// ParseMinutes parses user input as a positive minute count. Anything that
// is not a whole number in 1..MaxMinutes yields lastGood.
func ParseMinutes(text string, lastGood int) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 || n > MaxMinutes {
		return lastGood
	}
	return n
}
