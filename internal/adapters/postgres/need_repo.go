// Package postgres contains the hosted needs board backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/example/vocare/internal/core/need"
	"github.com/example/vocare/internal/ports/secondary"
)

// NeedRepository implements secondary.NeedRepository against the hosted
// hunger_feed and need_acceptances tables.
type NeedRepository struct {
	db *sql.DB
}

var _ secondary.NeedRepository = (*NeedRepository)(nil)

// Open connects to the hosted board using the lib/pq driver.
func Open(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	return conn, nil
}

// NewNeedRepository creates a new Postgres needs board repository.
func NewNeedRepository(db *sql.DB) *NeedRepository {
	return &NeedRepository{db: db}
}

const listOpenQuery = `SELECT id, description, location, category FROM hunger_feed WHERE active = true AND status = 'open' ORDER BY created_at DESC`

const boardQuery = `SELECT f.id, f.description, f.location, f.category, f.creator_id, f.creator_display_name, f.people_needed, f.status, f.created_at, (SELECT COUNT(*) FROM need_acceptances a WHERE a.need_id = f.id) AS acceptance_count, EXISTS (SELECT 1 FROM need_acceptances a WHERE a.need_id = f.id AND a.user_id = $1) AS viewer_accepted FROM hunger_feed f WHERE f.active = true`

// ListOpenNeeds returns active, open needs, newest first.
func (r *NeedRepository) ListOpenNeeds(ctx context.Context) ([]need.Need, error) {
	rows, err := r.db.QueryContext(ctx, listOpenQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query open needs: %w", err)
	}
	defer rows.Close()

	needs := []need.Need{}
	for rows.Next() {
		var n need.Need
		var category string
		var description, location sql.NullString
		if err := rows.Scan(&n.ID, &description, &location, &category); err != nil {
			return nil, fmt.Errorf("failed to scan need: %w", err)
		}
		n.Description = description.String
		n.Location = location.String
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
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO hunger_feed (id, description, location, category, creator_id, creator_display_name, people_needed, status, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true, $9)`,
		n.ID, n.Description, n.Location, string(n.Category), n.CreatorID, n.CreatorDisplayName,
		people, string(n.Status), n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create need: %w", err)
	}
	return nil
}

// GetByID retrieves a need as seen by viewerID.
func (r *NeedRepository) GetByID(ctx context.Context, id, viewerID string) (*need.BoardNeed, error) {
	row := r.db.QueryRowContext(ctx, boardQuery+" AND f.id = $2", viewerID, id)
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
	b.WriteString(boardQuery)
	args := []any{viewerID}

	if filters.Status != "" {
		args = append(args, string(filters.Status))
		fmt.Fprintf(&b, " AND f.status = $%d", len(args))
	}
	if filters.Category != "" {
		args = append(args, string(filters.Category))
		fmt.Fprintf(&b, " AND f.category = $%d", len(args))
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
		"INSERT INTO need_acceptances (need_id, user_id, created_at) VALUES ($1, $2, $3)",
		needID, userID, at)
	if err != nil {
		return fmt.Errorf("failed to add acceptance: %w", err)
	}
	return nil
}

// RemoveAcceptance deletes userID's acceptance of needID.
func (r *NeedRepository) RemoveAcceptance(ctx context.Context, needID, userID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM need_acceptances WHERE need_id = $1 AND user_id = $2", needID, userID)
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
	res, err := r.db.ExecContext(ctx, "UPDATE hunger_feed SET status = $1 WHERE id = $2", string(status), needID)
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
		description, location  sql.NullString
		creatorID, creatorName sql.NullString
		people                 sql.NullInt64
		createdAt              sql.NullTime
	)
	if err := s.Scan(&n.ID, &description, &location, &category, &creatorID, &creatorName,
		&people, &status, &createdAt, &n.AcceptanceCount, &n.CurrentUserAccepted); err != nil {
		return nil, err
	}
	n.Description = description.String
	n.Location = location.String
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
