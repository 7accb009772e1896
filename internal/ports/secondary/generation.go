package secondary

import (
	"context"
	"time"

	"github.com/example/vocare/internal/core/recommend"
)

// GenerationRequest is everything a generator receives. Remote generators use
// the rendered text; the rule-based generator uses the structured context.
type GenerationRequest struct {
	SystemInstruction string
	UserContext       string
	Context           recommend.Context
	RecentTitles      []string
	// NeedLocations lists the open needs' locations. Drafts for grief input
	// must not point at any of them.
	NeedLocations []string
}

// Generator produces a mission draft. Any error makes the resolver fall back.
type Generator interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// Generate returns a normalized draft or an error.
	Generate(ctx context.Context, req GenerationRequest) (recommend.Draft, error)
}

// WeatherProvider resolves a short free-text weather label.
type WeatherProvider interface {
	CurrentLabel(ctx context.Context) (string, error)
}

// Generation outcomes recorded by a GenerationObserver.
const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
)

// GenerationObserver records resolver and needs-loading outcomes.
type GenerationObserver interface {
	ObserveGeneration(backend, outcome string, elapsed time.Duration)
	ObserveNeedsLoad(ok bool)
}
