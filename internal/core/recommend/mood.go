// Package recommend contains the pure decision logic behind mission
// recommendations: profile aggregation, prompt rendering, response
// normalization and the rule-based fallback.
// This is part of the Functional Core - no I/O, only pure functions.
package recommend

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Mood is the session mood the user picked.
type Mood string

const (
	MoodAnxious   Mood = "anxious"
	MoodBored     Mood = "bored"
	MoodEnergized Mood = "energized"
	MoodContent   Mood = "content"
	MoodOther     Mood = "other"
)

// MaxMoodTextLength bounds the free-text description that accompanies MoodOther.
const MaxMoodTextLength = 100

// ErrInvalidMood wraps mood input validation failures.
var ErrInvalidMood = errors.New("invalid mood")

// Moods lists the selectable moods in display order.
var Moods = []Mood{MoodAnxious, MoodBored, MoodEnergized, MoodContent, MoodOther}

// MoodInput is the per-request mood: an enumerated mood, or MoodOther with
// the user's own words.
type MoodInput struct {
	Mood Mood
	Text string
}

// ParseMood maps a user-supplied string onto a Mood.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Moods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not one of anxious, bored, energized, content, other", ErrInvalidMood, s)
}

// Normalize validates the input and returns its canonical form.
// MoodOther requires 1-100 characters of text; text on any other mood is dropped.
func (in MoodInput) Normalize() (MoodInput, error) {
	mood, err := ParseMood(string(in.Mood))
	if err != nil {
		return MoodInput{}, err
	}
	if mood != MoodOther {
		return MoodInput{Mood: mood}, nil
	}

	text := strings.TrimSpace(in.Text)
	switch n := utf8.RuneCountInString(text); {
	case n == 0:
		return MoodInput{}, fmt.Errorf("%w: describe how you feel when choosing other", ErrInvalidMood)
	case n > MaxMoodTextLength:
		return MoodInput{}, fmt.Errorf("%w: feeling must be at most %d characters (got %d)", ErrInvalidMood, MaxMoodTextLength, n)
	}
	return MoodInput{Mood: MoodOther, Text: text}, nil
}
