package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	coreprofile "github.com/example/vocare/internal/core/profile"
	"github.com/example/vocare/internal/ports/primary"
	"github.com/example/vocare/internal/ports/secondary"
)

// ProfileServiceImpl implements the ProfileService interface.
type ProfileServiceImpl struct {
	profileRepo secondary.ProfileRepository
	logger      *zap.Logger
}

var _ primary.ProfileService = (*ProfileServiceImpl)(nil)

// NewProfileService creates a new ProfileService with injected dependencies.
func NewProfileService(profileRepo secondary.ProfileRepository, logger *zap.Logger) *ProfileServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileServiceImpl{profileRepo: profileRepo, logger: logger}
}

// GetProfile returns the stored profile, or the empty default.
func (s *ProfileServiceImpl) GetProfile(ctx context.Context) (*coreprofile.Profile, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, userID)
}

// UpdateProfile merges a partial update, validates and saves it.
func (s *ProfileServiceImpl) UpdateProfile(ctx context.Context, patch coreprofile.Patch) (*coreprofile.Profile, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	current, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := coreprofile.Apply(*current, patch)
	if result := coreprofile.CanSaveProfile(next); !result.Allowed {
		return nil, result.Error()
	}
	if err := s.profileRepo.Save(ctx, userID, &next); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Info("profile updated", zap.String("user", userID))
	return &next, nil
}

// CompleteOnboarding validates the full onboarding bounds and marks the profile complete.
func (s *ProfileServiceImpl) CompleteOnboarding(ctx context.Context) (*coreprofile.Profile, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if result := coreprofile.CanCompleteOnboarding(*p); !result.Allowed {
		return nil, result.Error()
	}
	p.OnboardingComplete = true
	if err := s.profileRepo.Save(ctx, userID, p); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Info("onboarding completed", zap.String("user", userID))
	return p, nil
}

func (s *ProfileServiceImpl) load(ctx context.Context, userID string) (*coreprofile.Profile, error) {
	p, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if p == nil {
		def := coreprofile.Default()
		return &def, nil
	}
	return p, nil
}
