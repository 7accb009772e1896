package app

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/example/vocare/internal/core/mission"
	"github.com/example/vocare/internal/core/need"
	"github.com/example/vocare/internal/core/profile"
	"github.com/example/vocare/internal/core/recommend"
	"github.com/example/vocare/internal/ports/primary"
)

type missionFixture struct {
	service   *MissionServiceImpl
	missions  *mockMissionRepository
	profiles  *mockProfileRepository
	journal   *mockJournalRepository
	needs     *mockNeedRepository
	generator *mockGenerator
	observer  *recordingObserver
	now       time.Time
}

func newMissionFixture(remote *mockGenerator) *missionFixture {
	f := &missionFixture{
		missions:  newMockMissionRepository(),
		profiles:  newMockProfileRepository(),
		journal:   newMockJournalRepository(),
		needs:     newMockNeedRepository(),
		generator: remote,
		observer:  &recordingObserver{},
		now:       time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC),
	}

	var gen *Resolver
	if remote != nil {
		gen = NewResolver(remote, nil, 50*time.Millisecond, f.observer, nil)
	} else {
		gen = NewResolver(nil, nil, 0, f.observer, nil)
	}

	f.service = NewMissionService(
		f.missions, f.profiles, f.journal, f.needs,
		mockWeather{label: "Clear sky, 68°F (20°C)"},
		gen, f.observer, nil,
		MissionServiceOptions{
			Rand: rand.New(rand.NewPCG(1, 1)),
			Now:  func() time.Time { return f.now },
		},
	)
	return f
}

func (f *missionFixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func TestGenerateMission_RemoteSuccess(t *testing.T) {
	remote := &mockGenerator{draft: recommend.Draft{
		Title: "Tutor a Classmate", Description: "Help someone study.", Location: "Library", EstimatedMinutes: 20,
	}}
	f := newMissionFixture(remote)
	f.needs.add(need.BoardNeed{Need: need.Need{ID: "n1", Description: "Tutor needed", Location: "Library", Category: need.CategorySupport}, Status: need.StatusOpen})

	resp, err := f.service.GenerateMission(userCtx(), primary.GenerateMissionRequest{Mood: recommend.MoodEnergized})
	if err != nil {
		t.Fatalf("GenerateMission() error = %v", err)
	}

	m := resp.Mission
	if m.Status != mission.StatusPending || m.Source != mission.SourceRemote || m.Title != "Tutor a Classmate" {
		t.Errorf("mission = %+v", m)
	}
	if remote.lastReq.SystemInstruction != recommend.SystemInstruction {
		t.Error("system instruction not sent")
	}
	if !strings.Contains(remote.lastReq.UserContext, "Tutor needed at Library") {
		t.Errorf("user context missing sampled need:\n%s", remote.lastReq.UserContext)
	}
	if !strings.Contains(remote.lastReq.UserContext, "Current weather: Clear sky") {
		t.Errorf("user context missing weather:\n%s", remote.lastReq.UserContext)
	}
	if got := f.observer.outcomes; len(got) != 1 || got[0] != "mock:success" {
		t.Errorf("observer outcomes = %v", got)
	}
	if stored := f.missions.missions[testUser]; len(stored) != 1 || stored[0].ID != m.ID {
		t.Errorf("stored missions = %+v", stored)
	}
}

func TestGenerateMission_FallbackOnBackendError(t *testing.T) {
	f := newMissionFixture(&mockGenerator{err: errBackend})

	resp, err := f.service.GenerateMission(userCtx(), primary.GenerateMissionRequest{Mood: recommend.MoodAnxious})
	if err != nil {
		t.Fatalf("GenerateMission() error = %v, want fallback", err)
	}
	if resp.Mission.Source != mission.SourceFallback {
		t.Errorf("Source = %q, want fallback", resp.Mission.Source)
	}
	if resp.Mission.Title != "Grounding Moment" {
		t.Errorf("Title = %q, want Grounding Moment", resp.Mission.Title)
	}
	if f.generator.calls != 1 {
		t.Errorf("remote calls = %d, want exactly 1 (no retries)", f.generator.calls)
	}
	if got := f.observer.outcomes; len(got) != 1 || got[0] != "mock:fallback" {
		t.Errorf("observer outcomes = %v", got)
	}
}

func TestGenerateMission_FallbackOnTimeout(t *testing.T) {
	f := newMissionFixture(&mockGenerator{delay: time.Second})

	start := time.Now()
	resp, err := f.service.GenerateMission(userCtx(), primary.GenerateMissionRequest{Mood: recommend.MoodBored})
	if err != nil {
		t.Fatalf("GenerateMission() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("GenerateMission() took %v, want bounded by timeout", elapsed)
	}
	if resp.Mission.Source != mission.SourceFallback {
		t.Errorf("Source = %q, want fallback", resp.Mission.Source)
	}
}

func TestGenerateMission_GriefIgnoresNeeds(t *testing.T) {
	f := newMissionFixture(nil)
	f.needs.add(need.BoardNeed{Need: need.Need{ID: "n1", Description: "Tutor needed", Location: "Library", Category: need.CategorySupport}, Status: need.StatusOpen})

	resp, err := f.service.GenerateMission(userCtx(), primary.GenerateMissionRequest{Mood: recommend.MoodOther, MoodText: "my dog died yesterday"})
	if err != nil {
		t.Fatalf("GenerateMission() error = %v", err)
	}
	if !strings.HasPrefix(resp.Mission.PersonalNote, "I'm so sorry") {
		t.Errorf("PersonalNote = %q, want condolence", resp.Mission.PersonalNote)
	}
	if resp.Mission.Location == "Library" {
		t.Error("Location = Library, want generic")
	}
}

func TestGenerateMission_GriefRemoteDraftChecked(t *testing.T) {
	tests := []struct {
		name       string
		draft      recommend.Draft
		wantSource mission.Source
	}{
		{
			name:       "draft at a need location falls back",
			draft:      recommend.Draft{Title: "Tutor", Description: "Help", Location: "Library", PersonalNote: "You've got this!"},
			wantSource: mission.SourceFallback,
		},
		{
			name:       "draft without a note falls back",
			draft:      recommend.Draft{Title: "Sit", Description: "Rest", Location: "Any quiet spot"},
			wantSource: mission.SourceFallback,
		},
		{
			name:       "gentle draft is kept",
			draft:      recommend.Draft{Title: "Remember", Description: "Write a memory", Location: "Any quiet spot", PersonalNote: "I'm sorry."},
			wantSource: mission.SourceRemote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &mockGenerator{draft: tt.draft}
			f := newMissionFixture(gen)
			f.needs.add(need.BoardNeed{Need: need.Need{ID: "n1", Description: "Tutor needed", Location: "Library", Category: need.CategorySupport}, Status: need.StatusOpen})

			resp, err := f.service.GenerateMission(userCtx(), primary.GenerateMissionRequest{Mood: recommend.MoodOther, MoodText: "my dog died yesterday"})
			if err != nil {
				t.Fatalf("GenerateMission() error = %v", err)
			}
			if resp.Mission.Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", resp.Mission.Source, tt.wantSource)
			}
			if resp.Mission.Location == "Library" || resp.Mission.PersonalNote == "" {
				t.Errorf("mission = %q / %q, want generic location and a note", resp.Mission.Location, resp.Mission.PersonalNote)
			}
			if strings.Contains(gen.lastReq.UserContext, "Tutor needed") {
				t.Error("grief prompt listed a community need")
			}
		})
	}
}

func TestGenerateMission_NoNeedsNeverUsesPoolLocation(t *testing.T) {
	pool := []string{"Dining Hall", "O'Neill Library", "Community Garden"}
	moods := []primary.GenerateMissionRequest{
		{Mood: recommend.MoodAnxious},
		{Mood: recommend.MoodBored},
		{Mood: recommend.MoodEnergized},
		{Mood: recommend.MoodContent},
		{Mood: recommend.MoodOther, MoodText: "lost my grandfather"},
	}

	for _, req := range moods {
		f := newMissionFixture(nil)
		resp, err := f.service.GenerateMission(userCtx(), req)
		if err != nil {
			t.Fatalf("GenerateMission(%s) error = %v", req.Mood, err)
		}
		for _, loc := range pool {
			if resp.Mission.Location == loc {
				t.Errorf("GenerateMission(%s) Location = %q from the fixture pool", req.Mood, loc)
			}
		}
	}
}

func TestGenerateMission_InvalidMinutesDefaulted(t *testing.T) {
	f := newMissionFixture(&mockGenerator{draft: recommend.Draft{Title: "T", Description: "D", Location: "L", EstimatedMinutes: -3}})

	resp, err := f.service.GenerateMission(userCtx(), primary.GenerateMissionRequest{Mood: recommend.MoodContent})
	if err != nil {
		t.Fatalf("GenerateMission() error = %v", err)
	}
	if resp.Mission.EstimatedMinutes != 15 {
		t.Errorf("EstimatedMinutes = %d, want 15", resp.Mission.EstimatedMinutes)
	}
}

func TestGenerateMission_PhysicalLimitationInFallback(t *testing.T) {
	f := newMissionFixture(nil)
	f.profiles.profiles[testUser] = &profile.Profile{PhysicalLimitations: []string{"injury"}, GladnessDrivers: []string{"teaching"}}

	resp, err := f.service.GenerateMission(userCtx(), primary.GenerateMissionRequest{Mood: recommend.MoodEnergized})
	if err != nil {
		t.Fatalf("GenerateMission() error = %v", err)
	}
	if physical := map[string]bool{"Grounding Walk": true, "Step Outside for Air": true, "Share Your Gifts": true}; physical[resp.Mission.Title] {
		t.Errorf("Title = %q, a physical template for an injured user", resp.Mission.Title)
	}
	if len(resp.Mission.GladnessDrivers) != 1 || resp.Mission.GladnessDrivers[0] != "teaching" {
		t.Errorf("GladnessDrivers = %v, want snapshot", resp.Mission.GladnessDrivers)
	}
}

func TestGenerateMission_ReplacesPendingAndAvoidsRecentTitle(t *testing.T) {
	f := newMissionFixture(nil)
	ctx := userCtx()

	first, err := f.service.GenerateMission(ctx, primary.GenerateMissionRequest{Mood: recommend.MoodAnxious})
	if err != nil {
		t.Fatalf("first GenerateMission() error = %v", err)
	}
	f.advance(time.Minute)

	second, err := f.service.GenerateMission(ctx, primary.GenerateMissionRequest{Mood: recommend.MoodAnxious})
	if err != nil {
		t.Fatalf("second GenerateMission() error = %v", err)
	}

	if second.Replaced == nil || second.Replaced.ID != first.Mission.ID || second.Replaced.Status != mission.StatusSkipped {
		t.Errorf("Replaced = %+v, want first mission skipped", second.Replaced)
	}
	if second.Mission.Title == first.Mission.Title {
		t.Errorf("fallback repeated recent title %q", first.Mission.Title)
	}
}

func TestGenerateMission_BlockedWhileActive(t *testing.T) {
	f := newMissionFixture(nil)
	ctx := userCtx()
	if _, err := f.service.GenerateMission(ctx, primary.GenerateMissionRequest{Mood: recommend.MoodContent}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.service.AcceptMission(ctx); err != nil {
		t.Fatal(err)
	}

	_, err := f.service.GenerateMission(ctx, primary.GenerateMissionRequest{Mood: recommend.MoodContent})

	if !errors.Is(err, mission.ErrMissionInProgress) {
		t.Errorf("GenerateMission() error = %v, want ErrMissionInProgress", err)
	}
}

func TestGenerateMission_NeedsLoadFailureIsMoodOnly(t *testing.T) {
	remote := &mockGenerator{draft: recommend.Draft{Title: "T", Description: "D", Location: "Wherever you are", EstimatedMinutes: 10}}
	f := newMissionFixture(remote)
	f.needs.listOpenErr = errors.New("connection refused")

	if _, err := f.service.GenerateMission(userCtx(), primary.GenerateMissionRequest{Mood: recommend.MoodEnergized}); err != nil {
		t.Fatalf("GenerateMission() error = %v", err)
	}
	if !strings.Contains(remote.lastReq.UserContext, "generic location") {
		t.Errorf("expected mood-only instruction:\n%s", remote.lastReq.UserContext)
	}
	if got := f.observer.needsLoaded; len(got) != 1 || got[0] {
		t.Errorf("needs load observations = %v, want [false]", got)
	}
}

func TestGenerateMission_Validation(t *testing.T) {
	f := newMissionFixture(nil)

	if _, err := f.service.GenerateMission(userCtx(), primary.GenerateMissionRequest{Mood: recommend.MoodOther}); !errors.Is(err, recommend.ErrInvalidMood) {
		t.Errorf("error = %v, want ErrInvalidMood", err)
	}
	if _, err := f.service.GenerateMission(context.Background(), primary.GenerateMissionRequest{Mood: recommend.MoodBored}); !errors.Is(err, ErrNoUser) {
		t.Errorf("error = %v, want ErrNoUser", err)
	}
}

func TestMissionLifecycle(t *testing.T) {
	f := newMissionFixture(nil)
	ctx := userCtx()

	gen, err := f.service.GenerateMission(ctx, primary.GenerateMissionRequest{Mood: recommend.MoodContent})
	if err != nil {
		t.Fatal(err)
	}
	accepted, err := f.service.AcceptMission(ctx)
	if err != nil || accepted.Status != mission.StatusActive {
		t.Fatalf("AcceptMission() = %+v, %v", accepted, err)
	}
	f.advance(15 * time.Minute)
	completed, err := f.service.CompleteMission(ctx)
	if err != nil || completed.Status != mission.StatusCompleted || completed.CompletedAt == nil {
		t.Fatalf("CompleteMission() = %+v, %v", completed, err)
	}

	resp, err := f.service.ReflectMission(ctx, primary.ReflectMissionRequest{FeltAlive: true, Journal: "It felt good to help."})
	if err != nil {
		t.Fatalf("ReflectMission() error = %v", err)
	}
	if resp.Mission.ID != gen.Mission.ID || resp.Mission.FeltAlive == nil || !*resp.Mission.FeltAlive {
		t.Errorf("reflected mission = %+v", resp.Mission)
	}
	if resp.Entry == nil || resp.Entry.MissionID != gen.Mission.ID || resp.Entry.WordCount != 5 {
		t.Errorf("journal entry = %+v", resp.Entry)
	}

	current, err := f.service.GetCurrentMission(ctx)
	if err != nil || current != nil {
		t.Errorf("GetCurrentMission() = %+v, %v; want empty slot", current, err)
	}
	history, err := f.service.ListHistory(ctx, 0)
	if err != nil || len(history) != 1 {
		t.Fatalf("ListHistory() = %d missions, %v", len(history), err)
	}

	summary, err := f.service.GetGrowthSummary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Completed != 1 || summary.Consolation != 1 || summary.ConsolationRate != 1 || summary.JournalEntries != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestAcceptMission_NoCurrentIsNoop(t *testing.T) {
	f := newMissionFixture(nil)

	m, err := f.service.AcceptMission(userCtx())

	if err != nil || m != nil {
		t.Errorf("AcceptMission() = %+v, %v; want nil, nil", m, err)
	}
	if f.missions.puts != 0 {
		t.Errorf("PutMissions called %d times, want 0", f.missions.puts)
	}
}

func TestSkipMission_ActiveRejected(t *testing.T) {
	f := newMissionFixture(nil)
	ctx := userCtx()
	if _, err := f.service.GenerateMission(ctx, primary.GenerateMissionRequest{Mood: recommend.MoodContent}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.service.AcceptMission(ctx); err != nil {
		t.Fatal(err)
	}

	_, err := f.service.SkipMission(ctx)

	if !errors.Is(err, mission.ErrIllegalTransition) {
		t.Errorf("SkipMission() error = %v, want ErrIllegalTransition", err)
	}
	current, _ := f.service.GetCurrentMission(ctx)
	if current == nil || current.Status != mission.StatusActive {
		t.Errorf("current after rejected skip = %+v, want active", current)
	}
}

func TestReflectMission_InvalidJournalLeavesState(t *testing.T) {
	f := newMissionFixture(nil)
	ctx := userCtx()
	if _, err := f.service.GenerateMission(ctx, primary.GenerateMissionRequest{Mood: recommend.MoodContent}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.service.AcceptMission(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := f.service.CompleteMission(ctx); err != nil {
		t.Fatal(err)
	}

	_, err := f.service.ReflectMission(ctx, primary.ReflectMissionRequest{FeltAlive: false, Journal: strings.Repeat("x", 5001)})

	if err == nil {
		t.Fatal("ReflectMission() error = nil, want journal validation error")
	}
	current, _ := f.service.GetCurrentMission(ctx)
	if current == nil {
		t.Error("reflection with invalid journal cleared the slot")
	}
}

func TestExpireStaleMissions(t *testing.T) {
	f := newMissionFixture(nil)
	ctx := userCtx()
	if _, err := f.service.GenerateMission(ctx, primary.GenerateMissionRequest{Mood: recommend.MoodContent}); err != nil {
		t.Fatal(err)
	}

	n, err := f.service.ExpireStaleMissions(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("ExpireStaleMissions() fresh = %d, %v", n, err)
	}

	f.advance(25 * time.Hour)
	n, err = f.service.ExpireStaleMissions(context.Background())
	if err != nil || n != 1 {
		t.Fatalf("ExpireStaleMissions() = %d, %v; want 1", n, err)
	}
	if current, _ := f.service.GetCurrentMission(ctx); current != nil {
		t.Errorf("stale mission still current: %+v", current)
	}
}
