// Package journal contains the pure business logic for reflection journal entries.
package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxContentLength bounds a single journal entry.
const MaxContentLength = 5000

// ErrInvalidEntry wraps journal validation failures.
var ErrInvalidEntry = errors.New("invalid journal entry")

// TimeOfDay buckets when an entry was written.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// Entry is a free-form reflection attached to a mission.
type Entry struct {
	ID        string    `json:"id"`
	MissionID string    `json:"missionId"`
	Content   string    `json:"content"`
	WordCount int       `json:"wordCount"`
	TimeOfDay TimeOfDay `json:"timeOfDay"`
	CreatedAt time.Time `json:"createdAt"`
}

// BucketFor returns the time-of-day bucket for t in its own location.
// Morning is 05-11, afternoon 12-16, evening 17-20, night otherwise.
func BucketFor(t time.Time) TimeOfDay {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return Morning
	case h >= 12 && h < 17:
		return Afternoon
	case h >= 17 && h < 21:
		return Evening
	default:
		return Night
	}
}

// CountWords counts whitespace-separated words.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// NewEntry validates content and builds an entry for missionID.
func NewEntry(missionID, content string, now time.Time) (Entry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Entry{}, fmt.Errorf("%w: entry is empty", ErrInvalidEntry)
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return Entry{}, fmt.Errorf("%w: entry must be at most %d characters", ErrInvalidEntry, MaxContentLength)
	}
	return Entry{
		ID:        uuid.NewString(),
		MissionID: missionID,
		Content:   content,
		WordCount: CountWords(content),
		TimeOfDay: BucketFor(now),
		CreatedAt: now,
	}, nil
}
