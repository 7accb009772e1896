package recommend

import (
	"regexp"
	"strings"
)

// Signal is what the keyword heuristic detected in free-text mood input.
type Signal string

const (
	SignalNone      Signal = ""
	SignalGrief     Signal = "grief"
	SignalBreakup   Signal = "breakup"
	SignalLowAffect Signal = "low-affect"
)

// The vocabulary tables are a heuristic. They favour precision over recall:
// "I lost my keys" and "my phone died" must not read as grief, so death verbs
// only count when a person or pet is their subject, and some genuine grief
// phrasings ("she's gone") fall through to the generic templates.
const lovedOne = `(mom|mum|mother|dad|father|parent|brother|sister|son|daughter|child|baby|wife|husband|partner|ex|friend|best friend|` +
	`grand(ma|pa|mother|father|mom|dad)|aunt|uncle|cousin|dog|cat|pet|puppy|kitten)s?`

var (
	griefPattern = regexp.MustCompile(`\b(` + strings.Join([]string{
		lovedOne + ` (just |suddenly |has |had )*(died|passed away|passed on|is dying|is dead|was killed)\b`,
		lovedOne + ` (just |suddenly )?passed($|[.,!;])`,
		`lost (my|our|a) ` + lovedOne + `\b`,
		`put (him|her|them|(my|our) (dog|cat|pet)) (down|to sleep)\b`,
		`passed away\b`, `death (of|in the family)\b`, `loss of (my|our|a)\b`,
		`funeral\b`, `memorial\b`, `grief\b`, `grieving\b`, `mourn(ing)?\b`, `bereave(d|ment)\b`,
	}, "|") + `)`)

	breakupPattern = regexp.MustCompile(`\b(` + strings.Join([]string{
		`broke up`, `break ?up`, `breaking up`, `split up`,
		`dumped`, `divorced?`, `separated`,
		`ex(-| )?(boyfriend|girlfriend|partner|husband|wife)`, `my ex`,
		`heart ?broken`, `heartbreak`, `cheated on`,
	}, "|") + `)\b`)

	lowAffectPattern = regexp.MustCompile(`\b(` + strings.Join([]string{
		`tired`, `exhausted`, `drained`, `numb`, `meh`, `blah`, `empty`,
		`unmotivated`, `lonely`, `alone`, `sad`, `down`, `low`, `blue`,
		`burn(t|ed) out`, `burnout`, `stuck`, `bored`, `flat`, `lethargic`,
	}, "|") + `)\b`)
)

// Classify inspects free text for grief, breakup or low-affect vocabulary.
// Grief takes precedence over breakup, which takes precedence over low affect.
func Classify(text string) Signal {
	t := strings.ToLower(text)
	switch {
	case t == "":
		return SignalNone
	case griefPattern.MatchString(t):
		return SignalGrief
	case breakupPattern.MatchString(t):
		return SignalBreakup
	case lowAffectPattern.MatchString(t):
		return SignalLowAffect
	}
	return SignalNone
}

// TemplateCategory names the family of fallback template that was chosen.
type TemplateCategory string

const (
	CategoryGrounding  TemplateCategory = "grounding"
	CategoryGrief      TemplateCategory = "grief"
	CategoryHeartbreak TemplateCategory = "heartbreak"
	CategoryComfort    TemplateCategory = "comfort"
	CategoryGifts      TemplateCategory = "gifts"
)

// SelectCategory applies the fallback priority order to a recommendation context.
func SelectCategory(rc Context) TemplateCategory {
	if rc.Mood == MoodAnxious {
		return CategoryGrounding
	}

	var signal Signal
	if rc.Mood == MoodOther {
		signal = Classify(rc.MoodText)
	}
	switch {
	case signal == SignalGrief:
		return CategoryGrief
	case signal == SignalBreakup:
		return CategoryHeartbreak
	case rc.Mood == MoodBored || signal == SignalLowAffect:
		return CategoryComfort
	}
	return CategoryGifts
}
