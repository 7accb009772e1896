package primary

import (
	"context"

	"github.com/example/vocare/internal/core/need"
)

// NeedService defines the primary port for the community needs board.
type NeedService interface {
	// ListNeeds lists board needs as seen by the current user.
	ListNeeds(ctx context.Context, filters NeedFilters) ([]*need.BoardNeed, error)

	// SubmitNeed posts a new open need.
	SubmitNeed(ctx context.Context, req SubmitNeedRequest) (*need.BoardNeed, error)

	// AcceptNeed signs the current user up for a need.
	AcceptNeed(ctx context.Context, needID string) error

	// WithdrawNeed removes the current user's acceptance.
	WithdrawNeed(ctx context.Context, needID string) error

	// MarkNeedFilled closes a need; only its creator may do this.
	MarkNeedFilled(ctx context.Context, needID string) error
}

// NeedFilters contains filter options for listing needs.
type NeedFilters struct {
	IncludeClosed bool
	Category      need.Category
}

// SubmitNeedRequest contains parameters for submitting a need.
type SubmitNeedRequest struct {
	Description  string
	Location     string
	Category     need.Category
	PeopleNeeded *int
}
