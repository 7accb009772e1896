package recommend

import (
	"github.com/example/vocare/internal/core/profile"
)

// Context is the immutable aggregate of everything downstream needs to
// recommend a mission. Absent profile facts stay absent (nil / empty) so the
// renderer can omit them instead of printing misleading defaults.
type Context struct {
	Mood                Mood
	MoodText            string
	GladnessDrivers     []string
	PersonalityTraits   []string
	PhysicalLimitations []string
	RechargeActivities  []string
	Hunger              *string
	Resistance          *int
	Vocation            string
}

// HasPhysicalConstraint reports whether the user named a real physical limitation.
func (c Context) HasPhysicalConstraint() bool {
	return profile.HasPhysicalConstraint(c.PhysicalLimitations)
}

// Aggregate merges a stored profile (possibly nil or partial) with the session mood.
// It is a pure merge; collections are copied so later profile edits cannot leak in.
func Aggregate(p *profile.Profile, mood MoodInput) (Context, error) {
	normalized, err := mood.Normalize()
	if err != nil {
		return Context{}, err
	}

	rc := Context{
		Mood:     normalized.Mood,
		MoodText: normalized.Text,
	}
	if p == nil {
		return rc, nil
	}

	rc.GladnessDrivers = cloneStrings(p.GladnessDrivers)
	rc.PersonalityTraits = cloneStrings(p.PersonalityTraits)
	rc.PhysicalLimitations = cloneStrings(p.PhysicalLimitations)
	rc.RechargeActivities = cloneStrings(p.RechargeActivities)
	if p.Hunger != nil && *p.Hunger != "" {
		hunger := *p.Hunger
		rc.Hunger = &hunger
	}
	if p.Resistance != nil {
		r := *p.Resistance
		rc.Resistance = &r
	}
	rc.Vocation = p.Vocation
	return rc, nil
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
