// Package profile contains the pure business logic for the onboarding profile.
// This is part of the Functional Core - no I/O, only pure functions.
package profile

import (
	"strings"
	"unicode/utf8"
)

// NoLimitations is the sentinel physical limitation; it excludes every other one.
const NoLimitations = "no-limitations"

// DefaultResistance is the midpoint of the fear (0) to exhaustion (100) axis.
const DefaultResistance = 50

// Bounds enforced when onboarding is completed.
const (
	MinPersonalityTraits  = 2
	MaxPersonalityTraits  = 3
	MinRechargeActivities = 2
	MaxRechargeActivities = 5
	MinVocationLength     = 10
	MaxVocationLength     = 500
	MinResistance         = 0
	MaxResistance         = 100
)

// Profile is the long-lived onboarding record owned by the user's device.
// Every field is optional until OnboardingComplete is set.
type Profile struct {
	DisplayName         string   `json:"displayName,omitempty"`
	GladnessDrivers     []string `json:"gladnessDrivers"`
	PersonalityTraits   []string `json:"personalityTraits"`
	PhysicalLimitations []string `json:"physicalLimitations"`
	RechargeActivities  []string `json:"rechargeActivities"`
	Hunger              *string  `json:"hunger"`
	Resistance          *int     `json:"resistance"`
	Vocation            string   `json:"vocation,omitempty"`
	OnboardingComplete  bool     `json:"onboardingComplete"`
}

// Default returns an empty profile with empty collections.
func Default() Profile {
	return Profile{
		GladnessDrivers:     []string{},
		PersonalityTraits:   []string{},
		PhysicalLimitations: []string{},
		RechargeActivities:  []string{},
	}
}

// ResistanceOrDefault returns the stored resistance or DefaultResistance when unanswered.
func (p Profile) ResistanceOrDefault() int {
	if p.Resistance == nil {
		return DefaultResistance
	}
	return *p.Resistance
}

// HasPhysicalConstraint reports whether any limitation other than the
// no-limitations sentinel was selected.
func (p Profile) HasPhysicalConstraint() bool {
	return HasPhysicalConstraint(p.PhysicalLimitations)
}

// HasPhysicalConstraint reports whether limitations carries a real constraint.
func HasPhysicalConstraint(limitations []string) bool {
	for _, l := range limitations {
		if l != NoLimitations && strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}

// Patch carries a partial profile update; nil fields are left untouched.
type Patch struct {
	DisplayName         *string
	GladnessDrivers     []string
	PersonalityTraits   []string
	PhysicalLimitations []string
	RechargeActivities  []string
	Hunger              *string
	Resistance          *int
	Vocation            *string
}

// Apply returns p with the patch merged in and identifier lists normalized.
func Apply(p Profile, patch Patch) Profile {
	next := p
	if patch.DisplayName != nil {
		next.DisplayName = strings.TrimSpace(*patch.DisplayName)
	}
	if patch.GladnessDrivers != nil {
		next.GladnessDrivers = normalizeIDs(patch.GladnessDrivers)
	}
	if patch.PersonalityTraits != nil {
		next.PersonalityTraits = normalizeIDs(patch.PersonalityTraits)
	}
	if patch.PhysicalLimitations != nil {
		next.PhysicalLimitations = normalizeLimitations(patch.PhysicalLimitations)
	}
	if patch.RechargeActivities != nil {
		next.RechargeActivities = normalizeIDs(patch.RechargeActivities)
	}
	if patch.Hunger != nil {
		hunger := strings.TrimSpace(*patch.Hunger)
		if hunger == "" {
			next.Hunger = nil
		} else {
			next.Hunger = &hunger
		}
	}
	if patch.Resistance != nil {
		r := *patch.Resistance
		next.Resistance = &r
	}
	if patch.Vocation != nil {
		next.Vocation = strings.TrimSpace(*patch.Vocation)
	}
	return next
}

// normalizeLimitations applies the sentinel rule the onboarding screen uses:
// when the last selection is no-limitations it clears the rest, otherwise any
// sentinel in the list is dropped.
func normalizeLimitations(ids []string) []string {
	out := normalizeIDs(ids)
	if len(out) == 0 {
		return out
	}
	if out[len(out)-1] == NoLimitations {
		return []string{NoLimitations}
	}
	filtered := out[:0]
	for _, id := range out {
		if id != NoLimitations {
			filtered = append(filtered, id)
		}
	}
	return filtered
}

// normalizeIDs trims, lowercases and de-duplicates identifiers, keeping order.
func normalizeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
