package profile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidProfile wraps every profile validation failure.
var ErrInvalidProfile = errors.New("invalid profile")

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
	return fmt.Errorf("%w: %s", ErrInvalidProfile, r.Reason)
}

// CanSaveProfile checks the invariants that hold at every stage of onboarding:
// resistance bounds, vocation length ceiling and sentinel exclusivity.
func CanSaveProfile(p Profile) GuardResult {
	var reasons []string

	if p.Resistance != nil && (*p.Resistance < MinResistance || *p.Resistance > MaxResistance) {
		reasons = append(reasons, fmt.Sprintf("resistance must be between %d and %d (got %d)", MinResistance, MaxResistance, *p.Resistance))
	}
	if runeLen(p.Vocation) > MaxVocationLength {
		reasons = append(reasons, fmt.Sprintf("vocation must be at most %d characters", MaxVocationLength))
	}
	if len(p.PhysicalLimitations) > 1 {
		for _, l := range p.PhysicalLimitations {
			if l == NoLimitations {
				reasons = append(reasons, "no-limitations cannot be combined with other limitations")
				break
			}
		}
	}

	return result(reasons)
}

// CanCompleteOnboarding checks the full onboarding bounds.
// Rule: traits 2-3, recharge activities 2-5, vocation 10-500 characters,
// at least one gladness driver, plus everything CanSaveProfile checks.
func CanCompleteOnboarding(p Profile) GuardResult {
	var reasons []string
	if base := CanSaveProfile(p); !base.Allowed {
		reasons = append(reasons, base.Reason)
	}

	if len(p.GladnessDrivers) == 0 {
		reasons = append(reasons, "pick at least one gladness driver")
	}
	if n := len(p.PersonalityTraits); n < MinPersonalityTraits || n > MaxPersonalityTraits {
		reasons = append(reasons, fmt.Sprintf("pick %d-%d personality traits (got %d)", MinPersonalityTraits, MaxPersonalityTraits, n))
	}
	if n := len(p.RechargeActivities); n < MinRechargeActivities || n > MaxRechargeActivities {
		reasons = append(reasons, fmt.Sprintf("pick %d-%d recharge activities (got %d)", MinRechargeActivities, MaxRechargeActivities, n))
	}
	if n := runeLen(p.Vocation); n < MinVocationLength {
		reasons = append(reasons, fmt.Sprintf("vocation must be at least %d characters", MinVocationLength))
	}

	return result(reasons)
}

func result(reasons []string) GuardResult {
	if len(reasons) == 0 {
		return GuardResult{Allowed: true}
	}
	return GuardResult{Allowed: false, Reason: strings.Join(reasons, "; ")}
}
