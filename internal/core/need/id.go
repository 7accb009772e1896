package need

import "github.com/google/uuid"

// GenerateNeedID returns a fresh random need ID.
func GenerateNeedID() string {
	return uuid.NewString()
}
