package need

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRejected wraps every rejected needs-board guard.
var ErrRejected = errors.New("need operation rejected")

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrRejected, r.Reason)
}

// SubmitContext provides the fields of a need being submitted.
type SubmitContext struct {
	Description  string
	Location     string
	Category     Category
	PeopleNeeded *int
	CreatorID    string
}

// CanSubmitNeed evaluates whether a need can be posted to the board.
// Rule: description, location and a known category are required; a signed-in
// creator is required; people-needed, when capped, is at least one.
func CanSubmitNeed(ctx SubmitContext) GuardResult {
	switch {
	case strings.TrimSpace(ctx.Description) == "":
		return GuardResult{Reason: "please describe the need"}
	case strings.TrimSpace(ctx.Location) == "":
		return GuardResult{Reason: "please add a location"}
	case !ctx.Category.Valid():
		return GuardResult{Reason: fmt.Sprintf("category must be one of service, organization, support (got %q)", ctx.Category)}
	case ctx.CreatorID == "":
		return GuardResult{Reason: "sign in to submit a need"}
	case ctx.PeopleNeeded != nil && *ctx.PeopleNeeded < 1:
		return GuardResult{Reason: "people needed must be at least 1"}
	}
	return GuardResult{Allowed: true}
}

// AcceptContext provides the board state needed to accept a need.
type AcceptContext struct {
	NeedID          string
	Exists          bool
	Status          Status
	PeopleNeeded    *int
	AcceptanceCount int
	AlreadyAccepted bool
}

// CanAcceptNeed evaluates whether the user can sign up for a need.
// Rule: the need must exist and be open, the user must not have accepted it
// already, and a capped need must still have room.
func CanAcceptNeed(ctx AcceptContext) GuardResult {
	switch {
	case !ctx.Exists:
		return GuardResult{Reason: fmt.Sprintf("need %s not found", ctx.NeedID)}
	case ctx.Status != StatusOpen:
		return GuardResult{Reason: fmt.Sprintf("need %s is %s", ctx.NeedID, ctx.Status)}
	case ctx.AlreadyAccepted:
		return GuardResult{Reason: fmt.Sprintf("you already accepted need %s", ctx.NeedID)}
	case ctx.PeopleNeeded != nil && ctx.AcceptanceCount >= *ctx.PeopleNeeded:
		return GuardResult{Reason: fmt.Sprintf("need %s already has %d of %d people", ctx.NeedID, ctx.AcceptanceCount, *ctx.PeopleNeeded)}
	}
	return GuardResult{Allowed: true}
}

// WithdrawContext provides the board state needed to undo an acceptance.
type WithdrawContext struct {
	NeedID          string
	AlreadyAccepted bool
}

// CanWithdrawAcceptance evaluates whether the user can undo an acceptance.
func CanWithdrawAcceptance(ctx WithdrawContext) GuardResult {
	if !ctx.AlreadyAccepted {
		return GuardResult{Reason: fmt.Sprintf("you have not accepted need %s", ctx.NeedID)}
	}
	return GuardResult{Allowed: true}
}

// FillContext provides the board state needed to mark a need filled.
type FillContext struct {
	NeedID    string
	Exists    bool
	Status    Status
	CreatorID string
	ActorID   string
}

// CanMarkFilled evaluates whether the actor can close a need.
// Rule: only the creator can mark their own open need as filled.
func CanMarkFilled(ctx FillContext) GuardResult {
	switch {
	case !ctx.Exists:
		return GuardResult{Reason: fmt.Sprintf("need %s not found", ctx.NeedID)}
	case ctx.CreatorID == "" || ctx.CreatorID != ctx.ActorID:
		return GuardResult{Reason: fmt.Sprintf("only the creator can mark need %s as filled", ctx.NeedID)}
	case ctx.Status != StatusOpen:
		return GuardResult{Reason: fmt.Sprintf("need %s is already %s", ctx.NeedID, ctx.Status)}
	}
	return GuardResult{Allowed: true}
}
