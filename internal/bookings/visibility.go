package bookings

import (
	"context"
	"time"
)

// Viewer is the authenticated user a listing is computed for.
type Viewer struct {
	ID    int
	Email string
}

// Ref is the minimal projection a visibility path returns: enough for identity and ordering.
type Ref struct {
	ID        int
	UID       string
	StartTime time.Time
}

// Query is what every visibility path receives. Take is already the over-fetch size (page size + 1).
type Query struct {
	Viewer    Viewer
	Predicate Predicate
	Order     Order
	Take      int
	Skip      int
}

// VisibilityPath is one way a viewer may be entitled to see a booking.
type VisibilityPath interface {
	Name() string
	Fetch(ctx context.Context, q Query) ([]Ref, error)
}

// Visibility path names, in the order their results are merged.
const (
	PathOwner        = "owner"
	PathAttendee     = "attendee"
	PathTeamEvent    = "team_event"
	PathTeamPersonal = "team_personal"
	PathSeatHolder   = "seat_holder"
)
