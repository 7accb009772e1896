// Package llm contains the remote generative backends used by the resolver.
package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/example/vocare/internal/core/recommend"
)

var (
	// ErrMissingCredential is returned when a backend has no API key configured.
	ErrMissingCredential = errors.New("missing API credential")

	// ErrMalformedResponse is returned when a backend reply cannot be decoded
	// into a mission draft.
	ErrMalformedResponse = errors.New("malformed backend response")
)

// DecodeDraft turns a model reply into a normalized draft. Code fences are
// stripped and near-JSON (trailing commas, single quotes) is repaired before
// decoding. Missing required fields are an error.
func DecodeDraft(content string) (recommend.Draft, error) {
	body := stripFences(content)
	if body == "" {
		return recommend.Draft{}, fmt.Errorf("%w: empty content", ErrMalformedResponse)
	}

	var raw recommend.RawDraft
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(body)
		if repairErr != nil {
			return recommend.Draft{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		raw = recommend.RawDraft{}
		if err := json.Unmarshal([]byte(repaired), &raw); err != nil {
			return recommend.Draft{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}

	draft, err := recommend.NormalizeDraft(raw)
	if err != nil {
		return recommend.Draft{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return draft, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
