package mission

import (
	"errors"
	"testing"
)

func TestStateGuards(t *testing.T) {
	empty := StateContext{}
	pending := StateContext{MissionID: "m1", HasCurrent: true, Status: StatusPending}
	active := StateContext{MissionID: "m1", HasCurrent: true, Status: StatusActive}
	completed := StateContext{MissionID: "m1", HasCurrent: true, Status: StatusCompleted}

	tests := []struct {
		name        string
		guard       func(StateContext) GuardResult
		ctx         StateContext
		wantAllowed bool
		wantCause   error
		wantReason  string
	}{
		{name: "accept pending", guard: CanAcceptMission, ctx: pending, wantAllowed: true},
		{name: "accept active", guard: CanAcceptMission, ctx: active, wantCause: ErrIllegalTransition,
			wantReason: "cannot accept mission m1: status is active, must be pending"},
		{name: "accept without mission", guard: CanAcceptMission, ctx: empty, wantCause: ErrNoCurrentMission,
			wantReason: "there is no current mission"},

		{name: "complete active", guard: CanCompleteMission, ctx: active, wantAllowed: true},
		{name: "complete pending", guard: CanCompleteMission, ctx: pending, wantCause: ErrIllegalTransition,
			wantReason: "cannot complete mission m1: status is pending, must be active"},
		{name: "complete without mission", guard: CanCompleteMission, ctx: empty, wantCause: ErrNoCurrentMission,
			wantReason: "there is no current mission"},

		{name: "skip pending", guard: CanSkipMission, ctx: pending, wantAllowed: true},
		{name: "skip active", guard: CanSkipMission, ctx: active, wantCause: ErrIllegalTransition,
			wantReason: "cannot skip mission m1: status is active, only pending missions can be skipped"},
		{name: "skip completed", guard: CanSkipMission, ctx: completed, wantCause: ErrIllegalTransition,
			wantReason: "cannot skip mission m1: status is completed, only pending missions can be skipped"},

		{name: "reflect completed", guard: CanReflectMission, ctx: completed, wantAllowed: true},
		{name: "reflect active", guard: CanReflectMission, ctx: active, wantAllowed: true},
		{name: "reflect pending", guard: CanReflectMission, ctx: pending, wantAllowed: true},
		{name: "reflect without mission", guard: CanReflectMission, ctx: empty, wantCause: ErrNoCurrentMission,
			wantReason: "there is no current mission"},

		{name: "generate into empty slot", guard: CanGenerateMission, ctx: empty, wantAllowed: true},
		{name: "generate over pending", guard: CanGenerateMission, ctx: pending, wantAllowed: true},
		{name: "generate over active", guard: CanGenerateMission, ctx: active, wantCause: ErrMissionInProgress,
			wantReason: "mission m1 is active; finish or reflect on it before asking for a new one"},
		{name: "generate over unreflected", guard: CanGenerateMission, ctx: completed, wantCause: ErrMissionInProgress,
			wantReason: "mission m1 is completed; finish or reflect on it before asking for a new one"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.guard(tt.ctx)

			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}

			err := result.Error()
			if tt.wantAllowed {
				if err != nil {
					t.Errorf("Error() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCause) {
				t.Errorf("Error() = %v, want wrapping %v", err, tt.wantCause)
			}
		})
	}
}
