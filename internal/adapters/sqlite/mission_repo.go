package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/vocare/internal/core/mission"
	"github.com/example/vocare/internal/core/recommend"
	"github.com/example/vocare/internal/ports/secondary"
)

// MissionRepository implements secondary.MissionRepository with SQLite.
type MissionRepository struct {
	db *sql.DB
}

var _ secondary.MissionRepository = (*MissionRepository)(nil)

// NewMissionRepository creates a new SQLite mission repository.
func NewMissionRepository(db *sql.DB) *MissionRepository {
	return &MissionRepository{db: db}
}

// GetMissions returns every stored mission for the user, newest first.
func (r *MissionRepository) GetMissions(ctx context.Context, userID string) ([]mission.Mission, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, location, estimated_minutes, personal_note, mood, gladness_drivers,
		        status, felt_alive, source, created_at, completed_at, archived_at
		 FROM missions WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query missions: %w", err)
	}
	defer rows.Close()

	var missions []mission.Mission
	for rows.Next() {
		var (
			m                       mission.Mission
			note, source            sql.NullString
			mood, drivers, status   string
			feltAlive               sql.NullBool
			completedAt, archivedAt sql.NullTime
		)
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Location, &m.EstimatedMinutes, &note, &mood, &drivers,
			&status, &feltAlive, &source, &m.CreatedAt, &completedAt, &archivedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mission: %w", err)
		}

		m.PersonalNote = note.String
		m.Mood = recommend.Mood(mood)
		m.Status = mission.MissionStatus(status)
		m.Source = mission.Source(source.String)
		if err := json.Unmarshal([]byte(drivers), &m.GladnessDrivers); err != nil {
			return nil, fmt.Errorf("failed to decode gladness drivers for %s: %w", m.ID, err)
		}
		if feltAlive.Valid {
			v := feltAlive.Bool
			m.FeltAlive = &v
		}
		m.CompletedAt = timePtr(completedAt)
		m.ArchivedAt = timePtr(archivedAt)
		missions = append(missions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate missions: %w", err)
	}
	return missions, nil
}

// PutMissions replaces the user's stored collection in one transaction.
func (r *MissionRepository) PutMissions(ctx context.Context, userID string, missions []mission.Mission) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM missions WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to clear missions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO missions (id, user_id, title, description, location, estimated_minutes, personal_note, mood,
		                       gladness_drivers, status, felt_alive, source, created_at, completed_at, archived_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare mission insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range missions {
		var feltAlive sql.NullBool
		if m.FeltAlive != nil {
			feltAlive = sql.NullBool{Bool: *m.FeltAlive, Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			m.ID, userID, m.Title, m.Description, m.Location, m.EstimatedMinutes, nullString(m.PersonalNote), string(m.Mood),
			encodeList(m.GladnessDrivers), string(m.Status), feltAlive, nullString(string(m.Source)),
			m.CreatedAt, nullTime(m.CompletedAt), nullTime(m.ArchivedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert mission %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit missions: %w", err)
	}
	return nil
}

// ListUsersWithCurrent returns users that have an unarchived mission.
func (r *MissionRepository) ListUsersWithCurrent(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT user_id FROM missions WHERE archived_at IS NULL ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, id)
	}
	return users, rows.Err()
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
