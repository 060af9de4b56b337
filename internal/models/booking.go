package models

import (
	"encoding/json"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingAccepted     BookingStatus = "ACCEPTED"
	BookingCancelled    BookingStatus = "CANCELLED"
	BookingRejected     BookingStatus = "REJECTED"
	BookingPending      BookingStatus = "PENDING"
	BookingAwaitingHost BookingStatus = "AWAITING_HOST"
)

// BookingStatuses lists every status in a stable order.
var BookingStatuses = []BookingStatus{
	BookingAccepted,
	BookingCancelled,
	BookingRejected,
	BookingPending,
	BookingAwaitingHost,
}

// Booking is a scheduled occurrence. UID is the externally stable identifier and is unique per booking.
type Booking struct {
	ID               int             `json:"id"`
	UID              string          `json:"uid"`
	RecurringEventID *string         `json:"recurringEventId,omitempty"`
	Status           BookingStatus   `json:"status"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	StartTime        time.Time       `json:"startTime"`
	EndTime          time.Time       `json:"endTime"`
	UserID           *int            `json:"userId,omitempty"`
	EventTypeID      *int            `json:"eventTypeId,omitempty"`
	EventType        *EventType      `json:"eventType,omitempty"`
	Attendees        []Attendee      `json:"attendees"`
	Payments         []Payment       `json:"payment"`
	SeatReferences   []SeatReference `json:"seatsReferences"`
	Rescheduled      bool            `json:"rescheduled"`
	IsRecorded       bool            `json:"isRecorded"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// Attendee is a person invited to a booking.
type Attendee struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	TimeZone string `json:"timeZone"`
	Locale   string `json:"locale,omitempty"`
}

// SeatReference links an attendee to a booking under seat-based capacity.
type SeatReference struct {
	ID           int             `json:"id"`
	ReferenceUID string          `json:"referenceUid"`
	AttendeeID   int             `json:"attendeeId"`
	Attendee     *Attendee       `json:"attendee,omitempty"`
	Data         json.RawMessage `json:"data,omitempty"`
}
