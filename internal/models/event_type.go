package models

import (
	"encoding/json"
	"time"
)

// EventType describes the bookable offering behind a booking.
// RecurringEvent and Metadata are kept raw as stored; they are validated when a booking is rendered.
type EventType struct {
	ID                 int             `json:"id"`
	Slug               string          `json:"slug"`
	Title              string          `json:"title"`
	Price              *int            `json:"price,omitempty"`
	Currency           *string         `json:"currency,omitempty"`
	RecurringEvent     json.RawMessage `json:"recurringEvent,omitempty"`
	Metadata           json.RawMessage `json:"metadata,omitempty"`
	SeatsShowAttendees bool            `json:"seatsShowAttendees"`
	TeamID             *int            `json:"teamId,omitempty"`
	Team               *TeamRef        `json:"team,omitempty"`
	ParentID           *int            `json:"parentId,omitempty"`
}

// TeamRef is the short form of a team embedded in an event type.
type TeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// RecurringEvent is the recurrence rule of an event type.
// Freq follows the RFC 5545 ordering used by rrule: 0=YEARLY ... 6=SECONDLY.
type RecurringEvent struct {
	DTStart  *time.Time `json:"dtstart,omitempty"`
	Interval int        `json:"interval" validate:"min=1"`
	Count    int        `json:"count" validate:"min=1,max=730"`
	Freq     int        `json:"freq" validate:"min=0,max=6"`
	Until    *time.Time `json:"until,omitempty"`
	TzID     string     `json:"tzid,omitempty"`
}

// EventTypeMetadata is the free-form metadata blob of an event type, restricted to the keys we understand.
// Unknown keys are tolerated and dropped.
type EventTypeMetadata struct {
	MultipleDuration              []int                      `json:"multipleDuration,omitempty" validate:"omitempty,dive,min=1"`
	Apps                          map[string]json.RawMessage `json:"apps,omitempty"`
	AdditionalNotesRequired       bool                       `json:"additionalNotesRequired,omitempty"`
	DisableSuccessPage            bool                       `json:"disableSuccessPage,omitempty"`
	DisableStandardEmails         *DisableStandardEmails     `json:"disableStandardEmails,omitempty"`
	RequiresConfirmationThreshold *ConfirmationThreshold     `json:"requiresConfirmationThreshold,omitempty"`
	BookerLayouts                 *BookerLayouts             `json:"bookerLayouts,omitempty"`
}

// DisableStandardEmails toggles the default emails per recipient kind.
type DisableStandardEmails struct {
	Confirmation *struct {
		Host     bool `json:"host,omitempty"`
		Attendee bool `json:"attendee,omitempty"`
	} `json:"confirmation,omitempty"`
}

// ConfirmationThreshold makes confirmation required only for bookings made closer than Time Unit to the start.
type ConfirmationThreshold struct {
	Time int    `json:"time" validate:"min=0"`
	Unit string `json:"unit" validate:"oneof=minutes hours"`
}

// BookerLayouts selects which booker views are offered.
type BookerLayouts struct {
	EnabledLayouts []string `json:"enabledLayouts" validate:"min=1,dive,oneof=month_view week_view column_view"`
	DefaultLayout  string   `json:"defaultLayout" validate:"oneof=month_view week_view column_view"`
}
