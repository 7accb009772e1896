package primary

import (
	"context"

	"github.com/example/vocare/internal/core/profile"
)

// ProfileService defines the primary port for onboarding profile operations.
type ProfileService interface {
	// GetProfile returns the stored profile, or the empty default.
	GetProfile(ctx context.Context) (*profile.Profile, error)

	// UpdateProfile merges a partial update and saves it.
	UpdateProfile(ctx context.Context, patch profile.Patch) (*profile.Profile, error)

	// CompleteOnboarding validates the full onboarding bounds and marks the profile complete.
	CompleteOnboarding(ctx context.Context) (*profile.Profile, error)
}
