package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/vocare/internal/core/need"
	"github.com/example/vocare/internal/ports/secondary"
)

// NeedRepository implements secondary.NeedRepository with SQLite.
type NeedRepository struct {
	db *sql.DB
}

var _ secondary.NeedRepository = (*NeedRepository)(nil)

// NewNeedRepository creates a new SQLite needs board repository.
func NewNeedRepository(db *sql.DB) *NeedRepository {
	return &NeedRepository{db: db}
}

const boardSelect = `SELECT f.id, f.description, f.location, f.category, f.creator_id, f.creator_display_name,
       f.people_needed, f.status, f.created_at,
       (SELECT COUNT(*) FROM need_acceptances a WHERE a.need_id = f.id) AS acceptance_count,
       EXISTS (SELECT 1 FROM need_acceptances a WHERE a.need_id = f.id AND a.user_id = ?) AS viewer_accepted
FROM hunger_feed f
WHERE f.active = 1`

// ListOpenNeeds returns active, open needs.
func (r *NeedRepository) ListOpenNeeds(ctx context.Context) ([]need.Need, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, description, location, category FROM hunger_feed
		 WHERE active = 1 AND status = 'open' ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query open needs: %w", err)
	}
	defer rows.Close()

	needs := []need.Need{}
	for rows.Next() {
		var n need.Need
		var category string
		if err := rows.Scan(&n.ID, &n.Description, &n.Location, &category); err != nil {
			return nil, fmt.Errorf("failed to scan need: %w", err)
		}
		n.Category = need.Category(category)
		needs = append(needs, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate needs: %w", err)
	}
	return needs, nil
}

// Create persists a new need.
func (r *NeedRepository) Create(ctx context.Context, n *need.BoardNeed) error {
	var people sql.NullInt64
	if n.PeopleNeeded != nil {
		people = sql.NullInt64{Int64: int64(*n.PeopleNeeded), Valid: true}
	}
	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO hunger_feed (id, description, location, category, creator_id, creator_display_name, people_needed, status, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?)`,
		n.ID, n.Description, n.Location, string(n.Category), nullString(n.CreatorID), nullString(n.CreatorDisplayName),
		people, string(n.Status), createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create need: %w", err)
	}
	return nil
}

// GetByID retrieves a need as seen by viewerID.
func (r *NeedRepository) GetByID(ctx context.Context, id, viewerID string) (*need.BoardNeed, error) {
	row := r.db.QueryRowContext(ctx, boardSelect+" AND f.id = ?", viewerID, id)
	n, err := scanBoardNeed(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("need %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get need: %w", err)
	}
	return n, nil
}

// List retrieves needs as seen by viewerID, newest first.
func (r *NeedRepository) List(ctx context.Context, viewerID string, filters secondary.NeedFilters) ([]*need.BoardNeed, error) {
	var b strings.Builder
	b.WriteString(boardSelect)
	args := []any{viewerID}

	if filters.Status != "" {
		b.WriteString(" AND f.status = ?")
		args = append(args, string(filters.Status))
	}
	if filters.Category != "" {
		b.WriteString(" AND f.category = ?")
		args = append(args, string(filters.Category))
	}
	b.WriteString(" ORDER BY f.created_at DESC")

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list needs: %w", err)
	}
	defer rows.Close()

	var needs []*need.BoardNeed
	for rows.Next() {
		n, err := scanBoardNeed(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan need: %w", err)
		}
		needs = append(needs, n)
	}
	return needs, rows.Err()
}

// AddAcceptance records that userID accepted needID.
func (r *NeedRepository) AddAcceptance(ctx context.Context, needID, userID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO need_acceptances (need_id, user_id, created_at) VALUES (?, ?, ?)",
		needID, userID, at,
	)
	if err != nil {
		return fmt.Errorf("failed to add acceptance: %w", err)
	}
	return nil
}

// RemoveAcceptance deletes userID's acceptance of needID.
func (r *NeedRepository) RemoveAcceptance(ctx context.Context, needID, userID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM need_acceptances WHERE need_id = ? AND user_id = ?", needID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove acceptance: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("acceptance of %s: %w", needID, secondary.ErrNotFound)
	}
	return nil
}

// UpdateStatus sets the need's board status.
func (r *NeedRepository) UpdateStatus(ctx context.Context, needID string, status need.Status) error {
	res, err := r.db.ExecContext(ctx, "UPDATE hunger_feed SET status = ? WHERE id = ?", string(status), needID)
	if err != nil {
		return fmt.Errorf("failed to update need status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("need %s: %w", needID, secondary.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBoardNeed(s rowScanner) (*need.BoardNeed, error) {
	var (
		n                      need.BoardNeed
		category, status       string
		creatorID, creatorName sql.NullString
		people                 sql.NullInt64
		createdAt              sql.NullTime
	)
	if err := s.Scan(&n.ID, &n.Description, &n.Location, &category, &creatorID, &creatorName,
		&people, &status, &createdAt, &n.AcceptanceCount, &n.CurrentUserAccepted); err != nil {
		return nil, err
	}
	n.Category = need.Category(category)
	n.Status = need.Status(status)
	n.CreatorID = creatorID.String
	n.CreatorDisplayName = creatorName.String
	if people.Valid {
		v := int(people.Int64)
		n.PeopleNeeded = &v
	}
	if createdAt.Valid {
		n.CreatedAt = createdAt.Time
	}
	return &n, nil
}
