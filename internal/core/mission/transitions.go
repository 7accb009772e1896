// Package mission contains the pure business logic for mission operations.
// This is part of the Functional Core - no I/O, only pure functions.
package mission

import "time"

// MissionStatus represents the possible states of a mission.
type MissionStatus string

const (
	StatusPending   MissionStatus = "pending"
	StatusActive    MissionStatus = "active"
	StatusCompleted MissionStatus = "completed"
	StatusSkipped   MissionStatus = "skipped"
)

// Valid reports whether s is one of the known statuses.
func (s MissionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

// StatusTransitionResult contains the result of a status transition.
// This is a value object that captures both the new status and any
// side effects (like setting CompletedAt timestamp).
type StatusTransitionResult struct {
	NewStatus   MissionStatus
	CompletedAt *time.Time // Set when transitioning to completed status
	ArchivedAt  *time.Time // Set when the mission leaves the current slot
}

// ApplyStatusTransition applies a status transition and returns the result.
// This is a pure function that captures the business rules:
// - When status becomes "completed", CompletedAt is set to now.
// - When status becomes "skipped", the mission is archived at now.
// The caller should pass the current time to enable testing.
func ApplyStatusTransition(newStatus MissionStatus, now time.Time) StatusTransitionResult {
	result := StatusTransitionResult{
		NewStatus: newStatus,
	}

	switch newStatus {
	case StatusCompleted:
		result.CompletedAt = &now
	case StatusSkipped:
		result.ArchivedAt = &now
	}

	return result
}

// InitialStatus returns the initial status for a new mission.
// This is a pure function that defines the business rule for new missions.
func InitialStatus() MissionStatus {
	return StatusPending
}
