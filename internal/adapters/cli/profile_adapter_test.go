package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/vocare/internal/core/profile"
)

type mockProfileService struct {
	p         *profile.Profile
	lastPatch profile.Patch
	err       error
}

func (m *mockProfileService) GetProfile(ctx context.Context) (*profile.Profile, error) {
	return m.p, m.err
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, patch profile.Patch) (*profile.Profile, error) {
	m.lastPatch = patch
	if m.err != nil {
		return nil, m.err
	}
	next := profile.Apply(*m.p, patch)
	return &next, nil
}

func (m *mockProfileService) CompleteOnboarding(ctx context.Context) (*profile.Profile, error) {
	return m.p, m.err
}

func TestProfileAdapter_Show(t *testing.T) {
	hunger := "loneliness"
	p := profile.Default()
	p.GladnessDrivers = []string{"teaching", "listening"}
	p.Hunger = &hunger
	out := &bytes.Buffer{}
	adapter := NewProfileAdapter(&mockProfileService{p: &p}, out)

	if err := adapter.Show(context.Background()); err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	for _, want := range []string{"Teaching, Listening", "Resistance:  50/100", "onboarding incomplete"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestProfileAdapter_SetRejected(t *testing.T) {
	p := profile.Default()
	svc := &mockProfileService{p: &p, err: profile.ErrInvalidProfile}
	adapter := NewProfileAdapter(svc, &bytes.Buffer{})

	err := adapter.Set(context.Background(), profile.Patch{Vocation: new(string)})
	if !errors.Is(err, profile.ErrInvalidProfile) {
		t.Errorf("Set() error = %v, want ErrInvalidProfile", err)
	}
}
