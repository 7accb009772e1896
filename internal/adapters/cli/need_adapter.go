package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/vocare/internal/core/need"
	"github.com/example/vocare/internal/ports/primary"
)

// NeedAdapter translates CLI operations to NeedService calls.
type NeedAdapter struct {
	service primary.NeedService
	out     io.Writer
}

// NewNeedAdapter creates a new NeedAdapter.
func NewNeedAdapter(service primary.NeedService, out io.Writer) *NeedAdapter {
	return &NeedAdapter{service: service, out: out}
}

// List prints the needs board.
func (a *NeedAdapter) List(ctx context.Context, all bool, category string) error {
	needs, err := a.service.ListNeeds(ctx, primary.NeedFilters{
		IncludeClosed: all,
		Category:      need.Category(category),
	})
	if err != nil {
		return fmt.Errorf("failed to list needs: %w", err)
	}
	if len(needs) == 0 {
		fmt.Fprintln(a.out, "No needs found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-38s %-13s %-8s %-9s %s\n", "ID", "CATEGORY", "STATUS", "PEOPLE", "NEED")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, n := range needs {
		mark := " "
		if n.CurrentUserAccepted {
			mark = successMark
		}
		fmt.Fprintf(a.out, "%-38s %-13s %-8s %-9s %s %s @ %s\n",
			n.ID, n.Category, n.Status, capacity(n), mark, n.Description, n.Location)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Submit posts a new need.
func (a *NeedAdapter) Submit(ctx context.Context, req primary.SubmitNeedRequest) error {
	n, err := a.service.SubmitNeed(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Posted need %s: %s\n", successMark, n.ID, n.Description)
	return nil
}

// Accept signs up for a need.
func (a *NeedAdapter) Accept(ctx context.Context, needID string) error {
	if err := a.service.AcceptNeed(ctx, needID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Accepted need %s\n", successMark, needID)
	return nil
}

// Withdraw removes an acceptance.
func (a *NeedAdapter) Withdraw(ctx context.Context, needID string) error {
	if err := a.service.WithdrawNeed(ctx, needID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Withdrew from need %s\n", successMark, needID)
	return nil
}

// Fill marks a need as filled.
func (a *NeedAdapter) Fill(ctx context.Context, needID string) error {
	if err := a.service.MarkNeedFilled(ctx, needID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Need %s marked %s\n", successMark, needID, color.New(color.FgGreen).Sprint("filled"))
	return nil
}

func capacity(n *need.BoardNeed) string {
	if n.PeopleNeeded == nil {
		return fmt.Sprintf("%d", n.AcceptanceCount)
	}
	return fmt.Sprintf("%d/%d", n.AcceptanceCount, *n.PeopleNeeded)
}
