// Package need contains the pure business logic for community needs.
// This is part of the Functional Core - no I/O, only pure functions.
package need

import "time"

// Category classifies a community need.
type Category string

const (
	CategoryService      Category = "service"
	CategoryOrganization Category = "organization"
	CategorySupport      Category = "support"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryService, CategoryOrganization, CategorySupport:
		return true
	}
	return false
}

// Status of a need on the board.
type Status string

const (
	StatusOpen      Status = "open"
	StatusFilled    Status = "filled"
	StatusCancelled Status = "cancelled"
)

// Need is a community-submitted request for help. The recommendation engine
// only samples and reads needs; it never mutates them.
type Need struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Category    Category `json:"category"`
}

// BoardNeed is a need together with the board metadata shown in listings.
type BoardNeed struct {
	Need
	CreatorID           string
	CreatorDisplayName  string
	PeopleNeeded        *int // nil means unlimited
	Status              Status
	AcceptanceCount     int
	CurrentUserAccepted bool
	CreatedAt           time.Time
}
