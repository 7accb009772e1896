// Package mission contains the pure business logic for mission operations.
// This is part of the Functional Core - no I/O, only pure functions.
package mission

import (
	"time"

	"github.com/google/uuid"
)

// GenerateMissionID returns a fresh, creation-time ordered mission ID (UUIDv7).
// Falls back to a random UUIDv4 if the v7 generator fails.
func GenerateMissionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// missionTime extracts the creation time embedded in a UUIDv7 mission ID.
// Returns false if the ID is not a version 7 UUID.
func missionTime(id string) (time.Time, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil || parsed.Version() != 7 {
		return time.Time{}, false
	}
	sec, nsec := parsed.Time().UnixTime()
	return time.Unix(sec, nsec).UTC(), true
}
