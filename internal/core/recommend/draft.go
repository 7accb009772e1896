package recommend

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// DefaultMinutes replaces a missing or unusable estimatedMinutes.
const DefaultMinutes = 15

// ErrIncompleteDraft is returned when a backend response lacks a required field.
var ErrIncompleteDraft = errors.New("incomplete mission draft")

// ErrUnsafeGriefDraft is returned when a draft for grief input lacks a
// sympathy note or sends the user to a community need.
var ErrUnsafeGriefDraft = errors.New("draft unsuitable for grief")

// Draft is a resolved recommendation before it is committed as a mission.
// Category is only set by the rule-based fallback.
type Draft struct {
	Title            string
	Description      string
	Location         string
	EstimatedMinutes int
	PersonalNote     string
	Category         TemplateCategory
}

// RawDraft mirrors the JSON object a generative backend must return.
// EstimatedMinutes is kept loose so that a string or fractional value is
// treated as invalid rather than failing the whole decode.
type RawDraft struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Location         string `json:"location"`
	EstimatedMinutes any    `json:"estimatedMinutes"`
	PersonalNote     string `json:"personalNote"`
}

// NormalizeDraft validates the required fields and substitutes DefaultMinutes
// for an absent, non-numeric, non-positive or non-integer estimate.
func NormalizeDraft(raw RawDraft) (Draft, error) {
	d := Draft{
		Title:        strings.TrimSpace(raw.Title),
		Description:  strings.TrimSpace(raw.Description),
		Location:     strings.TrimSpace(raw.Location),
		PersonalNote: strings.TrimSpace(raw.PersonalNote),
	}

	var missing []string
	if d.Title == "" {
		missing = append(missing, "title")
	}
	if d.Description == "" {
		missing = append(missing, "description")
	}
	if d.Location == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return Draft{}, fmt.Errorf("%w: missing %s", ErrIncompleteDraft, strings.Join(missing, ", "))
	}

	d.EstimatedMinutes = normalizeMinutes(raw.EstimatedMinutes)
	return d, nil
}

func normalizeMinutes(v any) int {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 1 || f != math.Trunc(f) || f > 24*60 {
		return DefaultMinutes
	}
	return int(f)
}

// CheckGriefDraft verifies a draft produced for grief input. The personal note
// must be present and the location must not be one of needLocations.
func CheckGriefDraft(d Draft, needLocations []string) error {
	if strings.TrimSpace(d.PersonalNote) == "" {
		return fmt.Errorf("%w: no personal note", ErrUnsafeGriefDraft)
	}
	loc := strings.TrimSpace(d.Location)
	for _, l := range needLocations {
		if l != "" && strings.EqualFold(loc, strings.TrimSpace(l)) {
			return fmt.Errorf("%w: location %q belongs to a community need", ErrUnsafeGriefDraft, loc)
		}
	}
	return nil
}
