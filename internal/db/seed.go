package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SampleNeeds is the development needs board.
var SampleNeeds = []struct {
	ID, Description, Location, Category string
}{
	{"sample-1", "Freshmen feel isolated and don't know anyone on campus", "Dining Hall", "service"},
	{"sample-2", "CS tutor needed for intro programming course", "O'Neill Library", "support"},
	{"sample-3", "Campus garden needs volunteers for spring planting", "Community Garden", "service"},
	{"sample-4", "Student org needs help organizing charity event logistics", "Student Center", "organization"},
	{"sample-5", "Elderly neighbors need companionship and conversation", "Local Senior Center", "service"},
	{"sample-6", "Mental health peer support group needs facilitators", "Counseling Center", "support"},
	{"sample-7", "Food pantry running low on volunteers for sorting", "Campus Ministry", "service"},
	{"sample-8", "International students need language practice partners", "Language Lab", "support"},
}

// SeedFixtures populates the needs board with SampleNeeds.
// Existing rows with the same IDs are left alone.
func SeedFixtures(database *sql.DB) (int, error) {
	now := time.Now().UTC()
	inserted := 0
	for i, n := range SampleNeeds {
		res, err := database.Exec(
			`INSERT OR IGNORE INTO hunger_feed (id, description, location, category, creator_display_name, status, active, created_at)
			 VALUES (?, ?, ?, ?, 'Vocare', 'open', 1, ?)`,
			n.ID, n.Description, n.Location, n.Category, now.Add(-time.Duration(i)*time.Minute),
		)
		if err != nil {
			return inserted, fmt.Errorf("seed needs: %w", err)
		}
		if rows, _ := res.RowsAffected(); rows > 0 {
			inserted++
		}
	}
	return inserted, nil
}
