package bookings

import (
	"errors"
	"fmt"
)

// ErrInvalidPage is returned for a negative cursor or a limit outside the allowed range.
var ErrInvalidPage = errors.New("invalid page parameters")

// QueryError reports a failed store query. Any query failure fails the whole listing.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("bookings query %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// ValidationError reports an event type blob that failed schema validation while rendering a booking.
type ValidationError struct {
	BookingID int
	Field     string
	Err       error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("booking %d: invalid %s: %v", e.BookingID, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
