// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/vocare/internal/core/profile"
	"github.com/example/vocare/internal/ports/secondary"
)

// ProfileRepository implements secondary.ProfileRepository with SQLite.
type ProfileRepository struct {
	db *sql.DB
}

var _ secondary.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new SQLite profile repository.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get returns the user's profile, or (nil, nil) when none was saved.
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*profile.Profile, error) {
	var (
		displayName, hunger, vocation sql.NullString
		drivers, traits, limits, rech string
		resistance                    sql.NullInt64
		complete                      bool
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT display_name, gladness_drivers, personality_traits, physical_limitations, recharge_activities,
		        hunger, resistance, vocation, onboarding_complete
		 FROM profiles WHERE user_id = ?`, userID,
	).Scan(&displayName, &drivers, &traits, &limits, &rech, &hunger, &resistance, &vocation, &complete)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	p := profile.Default()
	p.DisplayName = displayName.String
	p.Vocation = vocation.String
	p.OnboardingComplete = complete
	if hunger.Valid {
		h := hunger.String
		p.Hunger = &h
	}
	if resistance.Valid {
		v := int(resistance.Int64)
		p.Resistance = &v
	}
	for _, col := range []struct {
		raw string
		dst *[]string
	}{
		{drivers, &p.GladnessDrivers},
		{traits, &p.PersonalityTraits},
		{limits, &p.PhysicalLimitations},
		{rech, &p.RechargeActivities},
	} {
		if err := json.Unmarshal([]byte(col.raw), col.dst); err != nil {
			return nil, fmt.Errorf("failed to decode profile list: %w", err)
		}
	}
	return &p, nil
}

// Save upserts the user's profile.
func (r *ProfileRepository) Save(ctx context.Context, userID string, p *profile.Profile) error {
	lists := make([]string, 0, 4)
	for _, l := range [][]string{p.GladnessDrivers, p.PersonalityTraits, p.PhysicalLimitations, p.RechargeActivities} {
		lists = append(lists, encodeList(l))
	}

	var hunger sql.NullString
	if p.Hunger != nil {
		hunger = sql.NullString{String: *p.Hunger, Valid: true}
	}
	var resistance sql.NullInt64
	if p.Resistance != nil {
		resistance = sql.NullInt64{Int64: int64(*p.Resistance), Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, display_name, gladness_drivers, personality_traits, physical_limitations,
		                       recharge_activities, hunger, resistance, vocation, onboarding_complete, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(user_id) DO UPDATE SET
		   display_name = excluded.display_name,
		   gladness_drivers = excluded.gladness_drivers,
		   personality_traits = excluded.personality_traits,
		   physical_limitations = excluded.physical_limitations,
		   recharge_activities = excluded.recharge_activities,
		   hunger = excluded.hunger,
		   resistance = excluded.resistance,
		   vocation = excluded.vocation,
		   onboarding_complete = excluded.onboarding_complete,
		   updated_at = CURRENT_TIMESTAMP`,
		userID, nullString(p.DisplayName), lists[0], lists[1], lists[2], lists[3],
		hunger, resistance, nullString(p.Vocation), p.OnboardingComplete,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func encodeList(l []string) string {
	if len(l) == 0 {
		return "[]"
	}
	b, err := json.Marshal(l)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
