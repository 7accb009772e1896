// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
	"time"

	"github.com/example/vocare/internal/core/journal"
	"github.com/example/vocare/internal/core/mission"
	"github.com/example/vocare/internal/core/need"
	"github.com/example/vocare/internal/core/profile"
)

// ErrNotFound is returned by repositories when a keyed record does not exist.
var ErrNotFound = errors.New("not found")

// ProfileRepository defines the secondary port for profile persistence.
type ProfileRepository interface {
	// Get returns the user's profile, or (nil, nil) when none was saved.
	Get(ctx context.Context, userID string) (*profile.Profile, error)

	// Save upserts the user's profile.
	Save(ctx context.Context, userID string, p *profile.Profile) error
}

// MissionRepository defines the secondary port for mission history.
// Missions are read and written as the user's whole collection.
type MissionRepository interface {
	// GetMissions returns every stored mission for the user.
	GetMissions(ctx context.Context, userID string) ([]mission.Mission, error)

	// PutMissions replaces the user's stored collection.
	PutMissions(ctx context.Context, userID string, missions []mission.Mission) error

	// ListUsersWithCurrent returns users that have an unarchived mission.
	ListUsersWithCurrent(ctx context.Context) ([]string, error)
}

// NeedSource is the read-only view the recommendation engine samples from.
type NeedSource interface {
	// ListOpenNeeds returns active, non-filled needs. A failed load is an
	// error, distinct from an empty board.
	ListOpenNeeds(ctx context.Context) ([]need.Need, error)
}

// NeedRepository defines the secondary port for the needs board.
type NeedRepository interface {
	NeedSource

	// Create persists a new need.
	Create(ctx context.Context, n *need.BoardNeed) error

	// GetByID retrieves a need as seen by viewerID. Returns ErrNotFound if missing.
	GetByID(ctx context.Context, id, viewerID string) (*need.BoardNeed, error)

	// List retrieves needs as seen by viewerID, newest first.
	List(ctx context.Context, viewerID string, filters NeedFilters) ([]*need.BoardNeed, error)

	// AddAcceptance records that userID accepted needID.
	AddAcceptance(ctx context.Context, needID, userID string, at time.Time) error

	// RemoveAcceptance deletes userID's acceptance of needID.
	RemoveAcceptance(ctx context.Context, needID, userID string) error

	// UpdateStatus sets the need's board status.
	UpdateStatus(ctx context.Context, needID string, status need.Status) error
}

// NeedFilters contains filter options for querying needs.
type NeedFilters struct {
	Status   need.Status // empty means any
	Category need.Category
}

// JournalRepository defines the secondary port for reflection journal persistence.
type JournalRepository interface {
	// Create persists a new entry for userID.
	Create(ctx context.Context, userID string, e *journal.Entry) error

	// ListByUser returns entries newest first. limit <= 0 means all.
	ListByUser(ctx context.Context, userID string, limit int) ([]journal.Entry, error)

	// CountByUser returns how many entries the user has written.
	CountByUser(ctx context.Context, userID string) (int, error)
}
