// Package mission contains the pure business logic for mission operations.
// This is part of the Functional Core - no I/O, only pure functions.
package mission

import (
	"strings"
	"time"

	"github.com/example/vocare/internal/core/recommend"
)

// DefaultEstimatedMinutes is substituted when a draft carries no usable estimate.
const DefaultEstimatedMinutes = 15

// Source records which generator produced a mission.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// Mission is a single personalized micro-activity recommendation with lifecycle state.
type Mission struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Location         string         `json:"location"`
	EstimatedMinutes int            `json:"estimatedMinutes"`
	PersonalNote     string         `json:"personalNote,omitempty"`
	Mood             recommend.Mood `json:"mood"`
	GladnessDrivers  []string       `json:"gladnessDrivers"`
	Status           MissionStatus  `json:"status"`
	FeltAlive        *bool          `json:"feltAlive"`
	CreatedAt        time.Time      `json:"createdAt"`
	CompletedAt      *time.Time     `json:"completedAt"`
	ArchivedAt       *time.Time     `json:"archivedAt,omitempty"`
	Source           Source         `json:"source,omitempty"`
}

// IsCurrent reports whether the mission still occupies the current slot.
func (m Mission) IsCurrent() bool {
	return m.ArchivedAt == nil
}

// New wraps a resolved draft into a pending mission.
// Mood and gladness drivers are snapshotted from the recommendation context.
func New(draft recommend.Draft, rc recommend.Context, id string, source Source, now time.Time) Mission {
	minutes := draft.EstimatedMinutes
	if minutes <= 0 {
		minutes = DefaultEstimatedMinutes
	}

	drivers := make([]string, len(rc.GladnessDrivers))
	copy(drivers, rc.GladnessDrivers)

	return Mission{
		ID:               id,
		Title:            strings.TrimSpace(draft.Title),
		Description:      strings.TrimSpace(draft.Description),
		Location:         strings.TrimSpace(draft.Location),
		EstimatedMinutes: minutes,
		PersonalNote:     strings.TrimSpace(draft.PersonalNote),
		Mood:             rc.Mood,
		GladnessDrivers:  drivers,
		Status:           InitialStatus(),
		FeltAlive:        nil,
		CreatedAt:        now,
		CompletedAt:      nil,
		Source:           source,
	}
}
