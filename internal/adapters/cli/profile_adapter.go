package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/vocare/internal/core/profile"
	"github.com/example/vocare/internal/ports/primary"
)

// ProfileAdapter translates CLI operations to ProfileService calls.
type ProfileAdapter struct {
	service primary.ProfileService
	out     io.Writer
}

// NewProfileAdapter creates a new ProfileAdapter.
func NewProfileAdapter(service primary.ProfileService, out io.Writer) *ProfileAdapter {
	return &ProfileAdapter{service: service, out: out}
}

// Show prints the stored profile.
func (a *ProfileAdapter) Show(ctx context.Context) error {
	p, err := a.service.GetProfile(ctx)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	a.print(p)
	return nil
}

// Set applies a partial update.
func (a *ProfileAdapter) Set(ctx context.Context, patch profile.Patch) error {
	p, err := a.service.UpdateProfile(ctx, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Profile updated\n", successMark)
	a.print(p)
	return nil
}

// Complete finishes onboarding.
func (a *ProfileAdapter) Complete(ctx context.Context) error {
	if _, err := a.service.CompleteOnboarding(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Onboarding complete\n", successMark)
	return nil
}

func (a *ProfileAdapter) print(p *profile.Profile) {
	fmt.Fprintln(a.out)
	heading.Fprintln(a.out, "Profile")
	if p.DisplayName != "" {
		fmt.Fprintf(a.out, "  Name:        %s\n", p.DisplayName)
	}
	fmt.Fprintf(a.out, "  Gifts:       %s\n", listOrDash(profile.Labels(p.GladnessDrivers)))
	fmt.Fprintf(a.out, "  Personality: %s\n", listOrDash(profile.Labels(p.PersonalityTraits)))
	fmt.Fprintf(a.out, "  Limitations: %s\n", listOrDash(profile.Labels(p.PhysicalLimitations)))
	fmt.Fprintf(a.out, "  Recharge:    %s\n", listOrDash(profile.Labels(p.RechargeActivities)))
	hunger := "-"
	if p.Hunger != nil {
		hunger = profile.Label(*p.Hunger)
	}
	fmt.Fprintf(a.out, "  Hunger:      %s\n", hunger)
	fmt.Fprintf(a.out, "  Resistance:  %d/100\n", p.ResistanceOrDefault())
	if p.Vocation != "" {
		fmt.Fprintf(a.out, "  Vocation:    %s\n", p.Vocation)
	}
	status := infoMark + " onboarding incomplete"
	if p.OnboardingComplete {
		status = successMark + " onboarding complete"
	}
	fmt.Fprintf(a.out, "  %s\n\n", status)
}

func listOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
