package profile

import "strings"

// Option is one selectable onboarding answer.
type Option struct {
	ID    string
	Label string
}

// Onboarding option catalogs, in display order.
var (
	GladnessOptions = []Option{
		{"building", "Building"},
		{"listening", "Listening"},
		{"organizing", "Organizing"},
		{"creating", "Creating"},
		{"teaching", "Teaching"},
		{"helping", "Helping"},
		{"exploring", "Exploring"},
		{"writing", "Writing"},
		{"leading", "Leading"},
	}

	PersonalityOptions = []Option{
		{"empathetic", "Empathetic"},
		{"analytical", "Analytical"},
		{"adventurous", "Adventurous"},
		{"calm", "Calm"},
		{"energetic", "Energetic"},
		{"creative", "Creative"},
		{"disciplined", "Disciplined"},
		{"social", "Social"},
	}

	PhysicalOptions = []Option{
		{NoLimitations, "No limitations"},
		{"injury", "Injury or chronic pain"},
		{"low-energy", "Low energy / fatigue"},
		{"mobility", "Mobility challenges"},
		{"prefer-indoors", "Prefer to stay indoors"},
	}

	RechargeOptions = []Option{
		{"walking-nature", "Walking in nature"},
		{"listening-music", "Listening to music"},
		{"reading-writing", "Reading or writing"},
		{"talking-friends", "Talking to friends"},
		{"cooking-making", "Cooking or making things"},
		{"exercise-sports", "Exercise or sports"},
		{"quiet-alone", "Quiet alone time"},
		{"playing-games", "Playing games"},
		{"art-creativity", "Art or creativity"},
	}

	HungerOptions = []Option{
		{"loneliness", "Loneliness"},
		{"inefficiency", "Inefficiency"},
		{"injustice", "Injustice"},
	}
)

var labels = func() map[string]string {
	m := make(map[string]string)
	for _, group := range [][]Option{GladnessOptions, PersonalityOptions, PhysicalOptions, RechargeOptions, HungerOptions} {
		for _, o := range group {
			m[o.ID] = o.Label
		}
	}
	return m
}()

// Label returns the display label for an option ID. Unknown IDs (older
// catalogs, free-form values) are rendered with dashes turned into spaces.
func Label(id string) string {
	if l, ok := labels[id]; ok {
		return l
	}
	return strings.ReplaceAll(strings.TrimSpace(id), "-", " ")
}

// Labels maps Label over ids.
func Labels(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, Label(id))
	}
	return out
}
