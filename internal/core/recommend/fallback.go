package recommend

import (
	"fmt"
	"strings"

	"github.com/example/vocare/internal/core/profile"
)

// Generic locations used by fallback templates. Fallback never grounds a
// mission in a specific community need.
const (
	LocationQuietSpot   = "Any quiet spot"
	LocationAnywhere    = "Wherever you are"
	LocationComfortable = "Somewhere comfortable"
	LocationOutdoors    = "A nearby path or open space"
	LocationCommunity   = "Around your community"
)

type template struct {
	title    string
	physical bool
	build    func(rc Context) Draft
}

// templates holds the ordered variants for each category. The first variant
// that is allowed and not recently used wins; every category carries at
// least one non-physical variant.
var templates = map[TemplateCategory][]template{
	CategoryGrounding: {
		{title: "Grounding Moment", build: func(Context) Draft {
			return Draft{
				Description:      "Sit comfortably and breathe in for four counts, hold for four, and out for six. Then name five things you can see, four you can hear, and three you can feel.",
				Location:         LocationQuietSpot,
				EstimatedMinutes: 10,
				PersonalNote:     "It's okay to feel anxious. Let's slow everything down for a few minutes.",
			}
		}},
		{title: "Grounding Walk", physical: true, build: func(Context) Draft {
			return Draft{
				Description:      "Take an unhurried walk and match your breath to your steps. Notice the temperature of the air and the sounds around you instead of your thoughts.",
				Location:         LocationOutdoors,
				EstimatedMinutes: 15,
				PersonalNote:     "Anxiety lives in the future. A slow walk brings you back to right now.",
			}
		}},
		{title: "Breathe and Write", build: func(Context) Draft {
			return Draft{
				Description:      "Take three slow breaths, then write down what is worrying you without editing. Finish by writing one small thing that is within your control today.",
				Location:         LocationQuietSpot,
				EstimatedMinutes: 10,
				PersonalNote:     "Getting worries onto paper can make them feel smaller. Be gentle with yourself.",
			}
		}},
	},
	CategoryGrief: {
		{title: "A Gentle Pause", build: func(Context) Draft {
			return Draft{
				Description:      "Give yourself permission to stop for a few minutes. Sit somewhere quiet, breathe slowly, and let whatever you feel be there without needing to fix it.",
				Location:         LocationQuietSpot,
				EstimatedMinutes: 10,
				PersonalNote:     "I'm so sorry for your loss. There is nothing you need to accomplish right now, and grief deserves room.",
			}
		}},
		{title: "Write to Remember", build: func(Context) Draft {
			return Draft{
				Description:      "Write down one memory you want to keep: a moment, a habit, or something they taught you. You can keep it private or share it with someone who would understand.",
				Location:         LocationQuietSpot,
				EstimatedMinutes: 15,
				PersonalNote:     "I'm so sorry for your loss. Remembering is one way love keeps going.",
			}
		}},
	},
	CategoryHeartbreak: {
		{title: "Be Kind to Yourself", build: func(rc Context) Draft {
			return Draft{
				Description:      fmt.Sprintf("Set aside a few minutes for %s. Treat yourself the way you would treat a friend going through the same thing.", rechargePhrase(rc)),
				Location:         LocationComfortable,
				EstimatedMinutes: 15,
				PersonalNote:     "I'm sorry you're going through this. Heartbreak is real pain, and you don't have to push through it today.",
			}
		}},
		{title: "Reach Out to a Friend", build: func(Context) Draft {
			return Draft{
				Description:      "Send a message to someone who cares about you. You don't have to explain everything; a simple \"thinking of you, can we talk soon?\" is enough.",
				Location:         LocationAnywhere,
				EstimatedMinutes: 10,
				PersonalNote:     "I'm sorry things ended this way. You deserve support while you heal.",
			}
		}},
	},
	CategoryComfort: {
		{title: "Small Comfort Break", build: func(rc Context) Draft {
			return Draft{
				Description:      fmt.Sprintf("Take a short break for %s. Put your phone face down and let this be the only thing you do for a while.", rechargePhrase(rc)),
				Location:         LocationComfortable,
				EstimatedMinutes: 15,
				PersonalNote:     "Low energy days happen. A little rest is a perfectly good mission.",
			}
		}},
		{title: "Step Outside for Air", physical: true, build: func(Context) Draft {
			return Draft{
				Description:      "Step outside and walk around the block or sit in the fresh air. Look for one thing you have never noticed before.",
				Location:         LocationOutdoors,
				EstimatedMinutes: 10,
				PersonalNote:     "A change of scenery can shake loose a heavy mood.",
			}
		}},
		{title: "Tiny Reset", build: func(Context) Draft {
			return Draft{
				Description:      "Make yourself a warm drink, tidy one small surface, and put on a song you love. Small resets count.",
				Location:         LocationComfortable,
				EstimatedMinutes: 10,
				PersonalNote:     "You don't need a big win today. A small reset is enough.",
			}
		}},
	},
	CategoryGifts: {
		{title: "Share Your Gifts", physical: true, build: func(rc Context) Draft {
			return Draft{
				Description:      fmt.Sprintf("Look around your community for someone who could use a hand, and offer it using %s. Keep it small and concrete.", driverPhrase(rc)),
				Location:         LocationCommunity,
				EstimatedMinutes: 15,
				PersonalNote:     fmt.Sprintf("Your gift for %s is needed. Go share it with someone today.", driverPhrase(rc)),
			}
		}},
		{title: "Gifts From Where You Are", build: func(rc Context) Draft {
			return Draft{
				Description:      fmt.Sprintf("Without going anywhere, use %s to help one person: send encouragement, answer a question, or share something useful you know.", driverPhrase(rc)),
				Location:         LocationAnywhere,
				EstimatedMinutes: 15,
				PersonalNote:     fmt.Sprintf("You don't need to go far to make a difference. Your gift for %s works from right here.", driverPhrase(rc)),
			}
		}},
		{title: "Offer a Small Kindness", build: func(rc Context) Draft {
			return Draft{
				Description:      "Write a short note of thanks to someone who made your week better and send it today.",
				Location:         LocationAnywhere,
				EstimatedMinutes: 10,
				PersonalNote:     fmt.Sprintf("People who love %s tend to notice others. Let someone know you noticed them.", driverPhrase(rc)),
			}
		}},
	},
}

// Fallback deterministically selects a template for rc. Physically demanding
// variants are skipped when the user has a physical limitation, and a variant
// whose title appears in recent is skipped unless every allowed variant is recent.
func Fallback(rc Context, recent []string) Draft {
	category := SelectCategory(rc)

	var allowed []template
	for _, t := range templates[category] {
		if t.physical && rc.HasPhysicalConstraint() {
			continue
		}
		allowed = append(allowed, t)
	}

	chosen := allowed[0]
	for _, t := range allowed {
		if !containsTitle(recent, t.title) {
			chosen = t
			break
		}
	}

	d := chosen.build(rc)
	d.Title = chosen.title
	d.Category = category
	return d
}

// isPhysicalTemplate reports whether title names a physically demanding fallback template.
func isPhysicalTemplate(title string) bool {
	for _, variants := range templates {
		for _, t := range variants {
			if t.physical && t.title == title {
				return true
			}
		}
	}
	return false
}

func containsTitle(titles []string, title string) bool {
	for _, t := range titles {
		if strings.EqualFold(strings.TrimSpace(t), title) {
			return true
		}
	}
	return false
}

func driverPhrase(rc Context) string {
	drivers := rc.GladnessDrivers
	if len(drivers) > 2 {
		drivers = drivers[:2]
	}
	labels := profile.Labels(drivers)
	switch len(labels) {
	case 0:
		return "your gifts"
	case 1:
		return strings.ToLower(labels[0])
	default:
		return strings.ToLower(labels[0]) + " and " + strings.ToLower(labels[1])
	}
}

func rechargePhrase(rc Context) string {
	for _, id := range rc.RechargeActivities {
		if id == "exercise-sports" && rc.HasPhysicalConstraint() {
			continue
		}
		return strings.ToLower(profile.Label(id))
	}
	return "something that usually restores you"
}
