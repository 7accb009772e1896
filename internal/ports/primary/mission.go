// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"

	"github.com/example/vocare/internal/core/journal"
	"github.com/example/vocare/internal/core/mission"
	"github.com/example/vocare/internal/core/recommend"
)

// MissionService defines the primary port for the mission lifecycle.
// Every method acts on behalf of the user carried in ctx (see ctxutil).
type MissionService interface {
	// GenerateMission resolves a new pending mission for the given mood and
	// installs it as the current mission. Backend failures never surface here;
	// they degrade to the rule-based fallback.
	GenerateMission(ctx context.Context, req GenerateMissionRequest) (*GenerateMissionResponse, error)

	// AcceptMission moves the current mission from pending to active.
	// Returns (nil, nil) when there is no current mission.
	AcceptMission(ctx context.Context) (*mission.Mission, error)

	// CompleteMission moves the current mission from active to completed.
	// Returns (nil, nil) when there is no current mission.
	CompleteMission(ctx context.Context) (*mission.Mission, error)

	// SkipMission archives a pending current mission as skipped.
	// Returns (nil, nil) when there is no current mission.
	SkipMission(ctx context.Context) (*mission.Mission, error)

	// ReflectMission records whether the completed mission felt alive, with
	// an optional journal entry, and clears the current slot.
	ReflectMission(ctx context.Context, req ReflectMissionRequest) (*ReflectMissionResponse, error)

	// GetCurrentMission returns the current mission, or nil.
	GetCurrentMission(ctx context.Context) (*mission.Mission, error)

	// ListHistory returns archived missions, newest first. limit <= 0 means all.
	ListHistory(ctx context.Context, limit int) ([]mission.Mission, error)

	// GetGrowthSummary aggregates reflections across the history.
	GetGrowthSummary(ctx context.Context) (*GrowthSummary, error)

	// ListJournal returns the user's journal entries, newest first.
	ListJournal(ctx context.Context, limit int) ([]journal.Entry, error)

	// ExpireStaleMissions skips pending missions older than the configured
	// threshold for every user. Returns how many were skipped.
	ExpireStaleMissions(ctx context.Context) (int, error)
}

// GenerateMissionRequest contains parameters for generating a mission.
type GenerateMissionRequest struct {
	Mood     recommend.Mood
	MoodText string
}

// GenerateMissionResponse contains the result of generating a mission.
type GenerateMissionResponse struct {
	Mission  *mission.Mission
	Replaced *mission.Mission // pending mission that was auto-skipped, if any
}

// ReflectMissionRequest contains parameters for reflecting on a mission.
type ReflectMissionRequest struct {
	FeltAlive bool
	Journal   string
}

// ReflectMissionResponse contains the result of a reflection.
type ReflectMissionResponse struct {
	Mission *mission.Mission
	Entry   *journal.Entry
}

// GrowthSummary is the reflection aggregate shown by the stats view.
type GrowthSummary struct {
	mission.GrowthSummary
	ConsolationRate float64
	JournalEntries  int
}
