// Package mission contains the pure business logic for mission operations.
// This is part of the Functional Core - no I/O, only pure functions.
package mission

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalTransition wraps every rejected lifecycle guard.
	ErrIllegalTransition = errors.New("illegal mission transition")
	// ErrNoCurrentMission is returned when an operation needs a current mission and there is none.
	ErrNoCurrentMission = errors.New("no current mission")
	// ErrMissionInProgress is returned when generation is refused because a mission is underway.
	ErrMissionInProgress = errors.New("a mission is already in progress")
)

// StateContext provides the context needed for state-based mission guards.
// HasCurrent is false when the current-mission slot is empty.
type StateContext struct {
	MissionID  string
	HasCurrent bool
	Status     MissionStatus
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
	Cause   error  // Sentinel the reason belongs to
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	cause := r.Cause
	if cause == nil {
		cause = ErrIllegalTransition
	}
	return fmt.Errorf("%w: %s", cause, r.Reason)
}

func noCurrent() GuardResult {
	return GuardResult{
		Allowed: false,
		Reason:  "there is no current mission",
		Cause:   ErrNoCurrentMission,
	}
}

// CanAcceptMission evaluates whether the current mission can be accepted.
// Rule: only a pending mission can become active.
func CanAcceptMission(ctx StateContext) GuardResult {
	if !ctx.HasCurrent {
		return noCurrent()
	}
	if ctx.Status != StatusPending {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot accept mission %s: status is %s, must be pending", ctx.MissionID, ctx.Status),
		}
	}
	return GuardResult{Allowed: true}
}

// CanCompleteMission evaluates whether the current mission can be completed.
// Rule: only an active mission can be completed.
func CanCompleteMission(ctx StateContext) GuardResult {
	if !ctx.HasCurrent {
		return noCurrent()
	}
	if ctx.Status != StatusActive {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot complete mission %s: status is %s, must be active", ctx.MissionID, ctx.Status),
		}
	}
	return GuardResult{Allowed: true}
}

// CanSkipMission evaluates whether the current mission can be skipped.
// Rule: skipping is only legal before the mission was accepted.
func CanSkipMission(ctx StateContext) GuardResult {
	if !ctx.HasCurrent {
		return noCurrent()
	}
	if ctx.Status != StatusPending {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot skip mission %s: status is %s, only pending missions can be skipped", ctx.MissionID, ctx.Status),
		}
	}
	return GuardResult{Allowed: true}
}

// CanReflectMission evaluates whether the current mission can be reflected on.
// Rule: any current mission can be reflected on. Reflect finalizes whatever is
// in the slot; see Ledger.Reflect for how in-flight statuses are closed out.
func CanReflectMission(ctx StateContext) GuardResult {
	if !ctx.HasCurrent {
		return noCurrent()
	}
	return GuardResult{Allowed: true}
}

// CanGenerateMission evaluates whether a new mission may take the current slot.
// Rule: an empty slot or a pending mission (which gets auto-skipped) allows
// generation; an accepted or completed-but-unreflected mission blocks it.
func CanGenerateMission(ctx StateContext) GuardResult {
	if !ctx.HasCurrent || ctx.Status == StatusPending {
		return GuardResult{Allowed: true}
	}
	return GuardResult{
		Allowed: false,
		Reason:  fmt.Sprintf("mission %s is %s; finish or reflect on it before asking for a new one", ctx.MissionID, ctx.Status),
		Cause:   ErrMissionInProgress,
	}
}
