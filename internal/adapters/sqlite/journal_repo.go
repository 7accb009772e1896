package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/vocare/internal/core/journal"
	"github.com/example/vocare/internal/ports/secondary"
)

// JournalRepository implements secondary.JournalRepository with SQLite.
type JournalRepository struct {
	db *sql.DB
}

var _ secondary.JournalRepository = (*JournalRepository)(nil)

// NewJournalRepository creates a new SQLite journal repository.
func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Create persists a new entry.
func (r *JournalRepository) Create(ctx context.Context, userID string, e *journal.Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO journal_entries (id, user_id, mission_id, content, word_count, time_of_day, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, userID, e.MissionID, e.Content, e.WordCount, string(e.TimeOfDay), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}
	return nil
}

// ListByUser returns entries newest first.
func (r *JournalRepository) ListByUser(ctx context.Context, userID string, limit int) ([]journal.Entry, error) {
	query := `SELECT id, mission_id, content, word_count, time_of_day, created_at
	          FROM journal_entries WHERE user_id = ? ORDER BY created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	var entries []journal.Entry
	for rows.Next() {
		var e journal.Entry
		var tod string
		if err := rows.Scan(&e.ID, &e.MissionID, &e.Content, &e.WordCount, &tod, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		e.TimeOfDay = journal.TimeOfDay(tod)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountByUser returns how many entries the user has written.
func (r *JournalRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM journal_entries WHERE user_id = ?", userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count journal entries: %w", err)
	}
	return n, nil
}
