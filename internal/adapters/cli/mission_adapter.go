// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/example/vocare/internal/core/journal"
	"github.com/example/vocare/internal/core/mission"
	"github.com/example/vocare/internal/core/profile"
	"github.com/example/vocare/internal/core/recommend"
	"github.com/example/vocare/internal/ports/primary"
)

var (
	successMark = color.New(color.FgGreen).Sprint("✓")
	infoMark    = color.New(color.FgYellow).Sprint("!")
	heading     = color.New(color.Bold)
)

// MissionAdapter is a thin adapter that translates CLI operations to MissionService calls.
type MissionAdapter struct {
	service primary.MissionService
	out     io.Writer
}

// NewMissionAdapter creates a new MissionAdapter with the given service.
func NewMissionAdapter(service primary.MissionService, out io.Writer) *MissionAdapter {
	return &MissionAdapter{
		service: service,
		out:     out,
	}
}

// Generate asks for a new mission and prints it.
func (a *MissionAdapter) Generate(ctx context.Context, mood, feeling string) error {
	parsed, err := recommend.ParseMood(mood)
	if err != nil {
		return err
	}

	resp, err := a.service.GenerateMission(ctx, primary.GenerateMissionRequest{
		Mood:     parsed,
		MoodText: feeling,
	})
	if err != nil {
		return err
	}

	if resp.Replaced != nil {
		fmt.Fprintf(a.out, "%s Skipped previous mission: %s\n", infoMark, resp.Replaced.Title)
	}
	a.printMission(resp.Mission)
	return nil
}

// Accept starts the current mission.
func (a *MissionAdapter) Accept(ctx context.Context) error {
	return a.transition(ctx, a.service.AcceptMission, "accepted")
}

// Complete finishes the current mission.
func (a *MissionAdapter) Complete(ctx context.Context) error {
	return a.transition(ctx, a.service.CompleteMission, "completed")
}

// Skip discards the current pending mission.
func (a *MissionAdapter) Skip(ctx context.Context) error {
	return a.transition(ctx, a.service.SkipMission, "skipped")
}

func (a *MissionAdapter) transition(ctx context.Context, op func(context.Context) (*mission.Mission, error), verb string) error {
	m, err := op(ctx)
	if err != nil {
		return err
	}
	if m == nil {
		fmt.Fprintln(a.out, "No current mission")
		return nil
	}
	fmt.Fprintf(a.out, "%s Mission %s %s: %s\n", successMark, m.ID, verb, m.Title)
	return nil
}

// Reflect records how the completed mission felt.
func (a *MissionAdapter) Reflect(ctx context.Context, feltAlive bool, journalText string) error {
	resp, err := a.service.ReflectMission(ctx, primary.ReflectMissionRequest{
		FeltAlive: feltAlive,
		Journal:   journalText,
	})
	if err != nil {
		return err
	}
	if resp == nil || resp.Mission == nil {
		fmt.Fprintln(a.out, "No current mission")
		return nil
	}

	outcome := "consolation"
	if !feltAlive {
		outcome = "desolation"
	}
	fmt.Fprintf(a.out, "%s Reflected on %s (%s)\n", successMark, resp.Mission.Title, outcome)
	if resp.Entry != nil {
		fmt.Fprintf(a.out, "  Journal: %d words, %s\n", resp.Entry.WordCount, resp.Entry.TimeOfDay)
	}
	return nil
}

// Show prints the current mission.
func (a *MissionAdapter) Show(ctx context.Context) error {
	m, err := a.service.GetCurrentMission(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current mission: %w", err)
	}
	if m == nil {
		fmt.Fprintln(a.out, "No current mission")
		return nil
	}
	a.printMission(m)
	return nil
}

// History lists archived missions.
func (a *MissionAdapter) History(ctx context.Context, limit int) error {
	missions, err := a.service.ListHistory(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}
	if len(missions) == 0 {
		fmt.Fprintln(a.out, "No missions yet")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-12s %-10s %-6s %s\n", "DATE", "STATUS", "ALIVE", "TITLE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, m := range missions {
		fmt.Fprintf(a.out, "%-12s %-10s %-6s %s\n", m.CreatedAt.Format("2006-01-02"), m.Status, aliveLabel(m.FeltAlive), m.Title)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Stats prints the growth summary.
func (a *MissionAdapter) Stats(ctx context.Context) error {
	s, err := a.service.GetGrowthSummary(ctx)
	if err != nil {
		return fmt.Errorf("failed to get growth summary: %w", err)
	}

	fmt.Fprintln(a.out)
	heading.Fprintln(a.out, "Growth")
	fmt.Fprintf(a.out, "  Completed:   %d\n", s.Completed)
	fmt.Fprintf(a.out, "  Skipped:     %d\n", s.Skipped)
	fmt.Fprintf(a.out, "  Consolation: %d\n", s.Consolation)
	fmt.Fprintf(a.out, "  Desolation:  %d\n", s.Desolation)
	fmt.Fprintf(a.out, "  Unreflected: %d\n", s.Unreflected)
	fmt.Fprintf(a.out, "  Felt alive:  %.0f%%\n", s.ConsolationRate*100)
	fmt.Fprintf(a.out, "  Journal:     %d entries\n", s.JournalEntries)
	fmt.Fprintln(a.out)
	return nil
}

// Journal lists journal entries.
func (a *MissionAdapter) Journal(ctx context.Context, limit int) error {
	entries, err := a.service.ListJournal(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list journal: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No journal entries")
		return nil
	}
	for _, e := range entries {
		printEntry(a.out, e)
	}
	return nil
}

func (a *MissionAdapter) printMission(m *mission.Mission) {
	fmt.Fprintln(a.out)
	heading.Fprintf(a.out, "%s\n", m.Title)
	fmt.Fprintf(a.out, "  %s\n", m.Description)
	fmt.Fprintf(a.out, "  Where:  %s\n", m.Location)
	fmt.Fprintf(a.out, "  Time:   %d min\n", m.EstimatedMinutes)
	fmt.Fprintf(a.out, "  Status: %s\n", m.Status)
	if m.PersonalNote != "" {
		fmt.Fprintf(a.out, "  Note:   %s\n", color.New(color.Italic).Sprint(m.PersonalNote))
	}
	if len(m.GladnessDrivers) > 0 {
		fmt.Fprintf(a.out, "  Gifts:  %s\n", strings.Join(profile.Labels(m.GladnessDrivers), ", "))
	}
	if m.Source == mission.SourceFallback {
		fmt.Fprintf(a.out, "  %s\n", color.New(color.Faint).Sprint("(offline suggestion)"))
	}
	fmt.Fprintf(a.out, "  ID:     %s\n", m.ID)
	fmt.Fprintln(a.out)
}

func printEntry(out io.Writer, e journal.Entry) {
	fmt.Fprintf(out, "%s  %s · %d words\n", e.CreatedAt.Local().Format(time.RFC822), e.TimeOfDay, e.WordCount)
	fmt.Fprintf(out, "  %s\n\n", e.Content)
}

func aliveLabel(v *bool) string {
	switch {
	case v == nil:
		return "-"
	case *v:
		return "yes"
	default:
		return "no"
	}
}
