package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/vocare/internal/core/journal"
	"github.com/example/vocare/internal/core/mission"
	"github.com/example/vocare/internal/core/recommend"
	"github.com/example/vocare/internal/ports/primary"
)

// mockMissionService implements primary.MissionService for testing
type mockMissionService struct {
	generateFn func(ctx context.Context, req primary.GenerateMissionRequest) (*primary.GenerateMissionResponse, error)
	acceptFn   func(ctx context.Context) (*mission.Mission, error)
	reflectFn  func(ctx context.Context, req primary.ReflectMissionRequest) (*primary.ReflectMissionResponse, error)
	current    *mission.Mission
	history    []mission.Mission
	summary    *primary.GrowthSummary
	entries    []journal.Entry

	// Track calls for verification
	lastGenerateReq primary.GenerateMissionRequest
	lastReflectReq  primary.ReflectMissionRequest
	lastLimit       int
}

func (m *mockMissionService) GenerateMission(ctx context.Context, req primary.GenerateMissionRequest) (*primary.GenerateMissionResponse, error) {
	m.lastGenerateReq = req
	if m.generateFn != nil {
		return m.generateFn(ctx, req)
	}
	return &primary.GenerateMissionResponse{Mission: sampleMission()}, nil
}

func (m *mockMissionService) AcceptMission(ctx context.Context) (*mission.Mission, error) {
	if m.acceptFn != nil {
		return m.acceptFn(ctx)
	}
	return m.current, nil
}

func (m *mockMissionService) CompleteMission(ctx context.Context) (*mission.Mission, error) {
	return m.current, nil
}

func (m *mockMissionService) SkipMission(ctx context.Context) (*mission.Mission, error) {
	return m.current, nil
}

func (m *mockMissionService) ReflectMission(ctx context.Context, req primary.ReflectMissionRequest) (*primary.ReflectMissionResponse, error) {
	m.lastReflectReq = req
	if m.reflectFn != nil {
		return m.reflectFn(ctx, req)
	}
	return &primary.ReflectMissionResponse{Mission: m.current}, nil
}

func (m *mockMissionService) GetCurrentMission(ctx context.Context) (*mission.Mission, error) {
	return m.current, nil
}

func (m *mockMissionService) ListHistory(ctx context.Context, limit int) ([]mission.Mission, error) {
	m.lastLimit = limit
	return m.history, nil
}

func (m *mockMissionService) GetGrowthSummary(ctx context.Context) (*primary.GrowthSummary, error) {
	if m.summary == nil {
		return &primary.GrowthSummary{}, nil
	}
	return m.summary, nil
}

func (m *mockMissionService) ListJournal(ctx context.Context, limit int) ([]journal.Entry, error) {
	return m.entries, nil
}

func (m *mockMissionService) ExpireStaleMissions(ctx context.Context) (int, error) {
	return 0, nil
}

func sampleMission() *mission.Mission {
	return &mission.Mission{
		ID:               "MISSION-1",
		Title:            "Grounding Moment",
		Description:      "Find a quiet spot and breathe.",
		Location:         recommend.LocationQuietSpot,
		EstimatedMinutes: 10,
		PersonalNote:     "Your calm steadies others.",
		Status:           mission.StatusPending,
		Source:           mission.SourceFallback,
		GladnessDrivers:  []string{"teaching"},
		CreatedAt:        time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func newTestMissionAdapter() (*MissionAdapter, *mockMissionService, *bytes.Buffer) {
	svc := &mockMissionService{}
	out := &bytes.Buffer{}
	return NewMissionAdapter(svc, out), svc, out
}

func TestMissionAdapter_Generate(t *testing.T) {
	adapter, svc, out := newTestMissionAdapter()

	if err := adapter.Generate(context.Background(), "Other", "my grandmother died"); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if svc.lastGenerateReq.Mood != recommend.MoodOther || svc.lastGenerateReq.MoodText != "my grandmother died" {
		t.Errorf("request = %+v", svc.lastGenerateReq)
	}
	for _, want := range []string{"Grounding Moment", "Any quiet spot", "10 min", "offline suggestion", "Teaching"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestMissionAdapter_GenerateInvalidMood(t *testing.T) {
	adapter, svc, _ := newTestMissionAdapter()

	err := adapter.Generate(context.Background(), "furious", "")
	if !errors.Is(err, recommend.ErrInvalidMood) {
		t.Errorf("Generate() error = %v, want ErrInvalidMood", err)
	}
	if svc.lastGenerateReq.Mood != "" {
		t.Error("service should not be called with an invalid mood")
	}
}

func TestMissionAdapter_GenerateReplaced(t *testing.T) {
	adapter, svc, out := newTestMissionAdapter()
	svc.generateFn = func(ctx context.Context, req primary.GenerateMissionRequest) (*primary.GenerateMissionResponse, error) {
		old := sampleMission()
		old.Title = "Old Mission"
		return &primary.GenerateMissionResponse{Mission: sampleMission(), Replaced: old}, nil
	}

	if err := adapter.Generate(context.Background(), "bored", ""); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(out.String(), "Skipped previous mission: Old Mission") {
		t.Errorf("output = %s", out.String())
	}
}

func TestMissionAdapter_AcceptNoCurrent(t *testing.T) {
	adapter, _, out := newTestMissionAdapter()

	if err := adapter.Accept(context.Background()); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if !strings.Contains(out.String(), "No current mission") {
		t.Errorf("output = %q", out.String())
	}
}

func TestMissionAdapter_AcceptError(t *testing.T) {
	adapter, svc, _ := newTestMissionAdapter()
	svc.acceptFn = func(ctx context.Context) (*mission.Mission, error) {
		return nil, mission.ErrIllegalTransition
	}

	if err := adapter.Accept(context.Background()); !errors.Is(err, mission.ErrIllegalTransition) {
		t.Errorf("Accept() error = %v", err)
	}
}

func TestMissionAdapter_Transitions(t *testing.T) {
	adapter, svc, out := newTestMissionAdapter()
	svc.current = sampleMission()
	ctx := context.Background()

	for name, op := range map[string]func(context.Context) error{
		"accepted":  adapter.Accept,
		"completed": adapter.Complete,
		"skipped":   adapter.Skip,
	} {
		out.Reset()
		if err := op(ctx); err != nil {
			t.Fatalf("%s error = %v", name, err)
		}
		if !strings.Contains(out.String(), "MISSION-1 "+name) {
			t.Errorf("%s output = %q", name, out.String())
		}
	}
}

func TestMissionAdapter_Reflect(t *testing.T) {
	adapter, svc, out := newTestMissionAdapter()
	svc.reflectFn = func(ctx context.Context, req primary.ReflectMissionRequest) (*primary.ReflectMissionResponse, error) {
		return &primary.ReflectMissionResponse{
			Mission: sampleMission(),
			Entry:   &journal.Entry{WordCount: 4, TimeOfDay: journal.Evening},
		}, nil
	}

	if err := adapter.Reflect(context.Background(), false, "it was hard today"); err != nil {
		t.Fatalf("Reflect() error = %v", err)
	}
	if svc.lastReflectReq.FeltAlive || svc.lastReflectReq.Journal != "it was hard today" {
		t.Errorf("request = %+v", svc.lastReflectReq)
	}
	if !strings.Contains(out.String(), "desolation") || !strings.Contains(out.String(), "4 words, evening") {
		t.Errorf("output = %q", out.String())
	}
}

func TestMissionAdapter_History(t *testing.T) {
	adapter, svc, out := newTestMissionAdapter()
	yes := true
	m := *sampleMission()
	m.Status = mission.StatusCompleted
	m.FeltAlive = &yes
	svc.history = []mission.Mission{m}

	if err := adapter.History(context.Background(), 5); err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if svc.lastLimit != 5 {
		t.Errorf("limit = %d, want 5", svc.lastLimit)
	}
	if !strings.Contains(out.String(), "2026-03-01") || !strings.Contains(out.String(), "yes") {
		t.Errorf("output = %q", out.String())
	}
}

func TestMissionAdapter_Stats(t *testing.T) {
	adapter, svc, out := newTestMissionAdapter()
	svc.summary = &primary.GrowthSummary{
		GrowthSummary:   mission.GrowthSummary{Completed: 4, Consolation: 3, Desolation: 1},
		ConsolationRate: 0.75,
		JournalEntries:  2,
	}

	if err := adapter.Stats(context.Background()); err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	for _, want := range []string{"Completed:   4", "Felt alive:  75%", "Journal:     2 entries"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestAliveLabel(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		in   *bool
		want string
	}{
		{nil, "-"},
		{&yes, "yes"},
		{&no, "no"},
	}
	for _, tt := range tests {
		if got := aliveLabel(tt.in); got != tt.want {
			t.Errorf("aliveLabel() = %q, want %q", got, tt.want)
		}
	}
}
