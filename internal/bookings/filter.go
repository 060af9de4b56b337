package bookings

import (
	"errors"
	"slices"
	"time"

	"github.com/aura-scheduling/backend/internal/models"
)

// Status is the listing tab a caller asks for. Exactly one is chosen per request.
type Status string

const (
	StatusUpcoming    Status = "upcoming"
	StatusRecurring   Status = "recurring"
	StatusPast        Status = "past"
	StatusCancelled   Status = "cancelled"
	StatusUnconfirmed Status = "unconfirmed"
)

// ErrInvalidStatus is returned for a status tag outside the five known ones.
var ErrInvalidStatus = errors.New("invalid booking status filter")

// Order is the direction bookings are sorted by start time.
type Order int

const (
	OrderAsc Order = iota
	OrderDesc
)

func (o Order) String() string {
	if o == OrderDesc {
		return "DESC"
	}
	return "ASC"
}

// Filters narrows a listing. Nil or empty id lists and nil dates mean "no constraint".
type Filters struct {
	Status         Status
	TeamIDs        []int
	UserIDs        []int
	EventTypeIDs   []int
	AfterStartDate *time.Time
	BeforeEndDate  *time.Time
}

// Predicate is the resolved time/status window plus scoping constraints, evaluated at Now.
type Predicate struct {
	Status         Status
	Now            time.Time
	TeamIDs        []int
	UserIDs        []int
	EventTypeIDs   []int
	AfterStartDate *time.Time
	BeforeEndDate  *time.Time
}

// Resolve turns filters into a predicate and ordering direction.
func Resolve(f Filters, now time.Time) (Predicate, Order, error) {
	var order Order
	switch f.Status {
	case StatusUpcoming, StatusRecurring, StatusUnconfirmed:
		order = OrderAsc
	case StatusPast, StatusCancelled:
		order = OrderDesc
	default:
		return Predicate{}, OrderAsc, ErrInvalidStatus
	}
	p := Predicate{
		Status:         f.Status,
		Now:            now,
		TeamIDs:        nonEmpty(f.TeamIDs),
		UserIDs:        nonEmpty(f.UserIDs),
		EventTypeIDs:   nonEmpty(f.EventTypeIDs),
		AfterStartDate: f.AfterStartDate,
		BeforeEndDate:  f.BeforeEndDate,
	}
	return p, order, nil
}

func nonEmpty(ids []int) []int {
	if len(ids) == 0 {
		return nil
	}
	return slices.Clone(ids)
}

func isCancelledOrRejected(s models.BookingStatus) bool {
	return s == models.BookingCancelled || s == models.BookingRejected
}

// Matches evaluates the predicate against a fully loaded booking.
func (p Predicate) Matches(b models.Booking) bool {
	return p.matchesStatus(b) && p.matchesScope(b)
}

func (p Predicate) matchesStatus(b models.Booking) bool {
	inSeries := b.RecurringEventID != nil
	notEnded := !b.EndTime.Before(p.Now)
	switch p.Status {
	case StatusUpcoming:
		if !notEnded {
			return false
		}
		if inSeries {
			return b.Status == models.BookingAccepted
		}
		return !isCancelledOrRejected(b.Status)
	case StatusRecurring:
		return notEnded && inSeries && !isCancelledOrRejected(b.Status)
	case StatusPast:
		return !b.EndTime.After(p.Now) && !isCancelledOrRejected(b.Status)
	case StatusCancelled:
		return isCancelledOrRejected(b.Status)
	case StatusUnconfirmed:
		return notEnded && b.Status == models.BookingPending
	}
	return false
}

func (p Predicate) matchesScope(b models.Booking) bool {
	if p.TeamIDs != nil {
		if b.EventType == nil || b.EventType.TeamID == nil || !slices.Contains(p.TeamIDs, *b.EventType.TeamID) {
			return false
		}
	}
	if p.UserIDs != nil {
		if b.UserID == nil || !slices.Contains(p.UserIDs, *b.UserID) {
			return false
		}
	}
	if p.EventTypeIDs != nil {
		if b.EventTypeID == nil || !slices.Contains(p.EventTypeIDs, *b.EventTypeID) {
			return false
		}
	}
	if p.AfterStartDate != nil && b.StartTime.Before(*p.AfterStartDate) {
		return false
	}
	if p.BeforeEndDate != nil && b.EndTime.After(*p.BeforeEndDate) {
		return false
	}
	return true
}
