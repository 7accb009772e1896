package recommend

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/example/vocare/internal/core/need"
	"github.com/example/vocare/internal/core/profile"
)

// Rendering limits.
const (
	MaxVocationRunes = 200
	MaxRecentTitles  = 5
)

// UnknownWeather is the label used when weather could not be resolved.
const UnknownWeather = "Unknown weather"

// PromptInput is everything the user-context renderer needs.
type PromptInput struct {
	Context      Context
	Needs        []need.Need
	Weather      string
	RecentTitles []string
}

// RenderUserContext renders the aggregate into the user message sent to a
// generative backend. It is deterministic: equal inputs yield equal text.
func RenderUserContext(in PromptInput) string {
	rc := in.Context
	var b strings.Builder

	if rc.Mood == MoodOther && rc.MoodText != "" {
		b.WriteString("PRIMARY FOCUS - the user described how they feel in their own words:\n")
		fmt.Fprintf(&b, "%q\n", rc.MoodText)
		b.WriteString("Respond to this first. Acknowledge it with empathy before anything else.\n\n")
	}

	b.WriteString("USER CONTEXT\n")
	if rc.Mood == MoodOther {
		b.WriteString("Mood: other (see primary focus)\n")
	} else {
		fmt.Fprintf(&b, "Mood: %s\n", rc.Mood)
	}
	writeList(&b, "Gladness drivers", profile.Labels(rc.GladnessDrivers))
	writeList(&b, "Personality", profile.Labels(rc.PersonalityTraits))
	if rc.HasPhysicalConstraint() {
		writeList(&b, "Physical limitations", profile.Labels(constraints(rc.PhysicalLimitations)))
		b.WriteString("  Do not suggest anything physically strenuous or that conflicts with these limitations.\n")
	}
	writeList(&b, "Recharges by", profile.Labels(rc.RechargeActivities))
	if rc.Hunger != nil {
		fmt.Fprintf(&b, "Problem that breaks their heart: %s\n", profile.Label(*rc.Hunger))
	}
	if rc.Resistance != nil {
		fmt.Fprintf(&b, "Resistance: %d/100 (%s)\n", *rc.Resistance, resistanceHint(*rc.Resistance))
	}
	if v := strings.TrimSpace(rc.Vocation); v != "" {
		fmt.Fprintf(&b, "Vocation: %s\n", truncate(v, MaxVocationRunes))
	}
	if w := strings.TrimSpace(in.Weather); w != "" {
		fmt.Fprintf(&b, "Current weather: %s\n", w)
	}

	recent := in.RecentTitles
	if len(recent) > MaxRecentTitles {
		recent = recent[:MaxRecentTitles]
	}
	if len(recent) > 0 {
		b.WriteString("\nDO NOT REPEAT these recent missions:\n")
		for _, t := range recent {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}

	b.WriteString("\n")
	if len(in.Needs) == 0 {
		b.WriteString("No community needs are available right now. Create a standalone personal mission and use a generic location (for example \"Any quiet spot\" or \"Wherever you are\"), never a specific named place.\n")
	} else {
		b.WriteString("COMMUNITY NEEDS:\n")
		for i, n := range in.Needs {
			fmt.Fprintf(&b, "%d. [%s] %s at %s\n", i+1, n.Category, n.Description, n.Location)
		}
		b.WriteString("Ground the mission in one of these needs only if it fits the user's mood. Otherwise create a standalone personal mission with a generic location.\n")
	}

	b.WriteString("\nGenerate one micro-mission for this user as JSON.")
	return b.String()
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(items, ", "))
}

func constraints(limitations []string) []string {
	out := make([]string, 0, len(limitations))
	for _, l := range limitations {
		if l != profile.NoLimitations {
			out = append(out, l)
		}
	}
	return out
}

func resistanceHint(r int) string {
	switch {
	case r < 40:
		return "leans toward fear; favour low-stakes, reassuring steps"
	case r > 60:
		return "leans toward exhaustion; favour restful, low-effort steps"
	default:
		return "balanced"
	}
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}
