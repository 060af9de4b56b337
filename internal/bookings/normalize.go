package bookings

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/aura-scheduling/backend/internal/eventtypes"
	"github.com/aura-scheduling/backend/internal/models"
)

// TimeLayout is the canonical text form of booking timestamps: UTC with millisecond precision.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// DefaultCurrency is used when an event type has no currency and none is configured.
const DefaultCurrency = "usd"

// EnrichedBooking is a booking as returned to the viewer.
type EnrichedBooking struct {
	ID               int                    `json:"id"`
	UID              string                 `json:"uid"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	Status           models.BookingStatus   `json:"status"`
	StartTime        string                 `json:"startTime"`
	EndTime          string                 `json:"endTime"`
	UserID           *int                   `json:"userId"`
	RecurringEventID *string                `json:"recurringEventId"`
	Rescheduled      bool                   `json:"rescheduled"`
	IsRecorded       bool                   `json:"isRecorded"`
	Attendees        []models.Attendee      `json:"attendees"`
	Payment          []models.Payment       `json:"payment"`
	SeatsReferences  []models.SeatReference `json:"seatsReferences"`
	EventType        *EnrichedEventType     `json:"eventType"`
}

// EnrichedEventType is the event type of a returned booking with its blobs validated and defaults applied.
type EnrichedEventType struct {
	ID                 int                        `json:"id"`
	Slug               string                     `json:"slug"`
	Title              string                     `json:"title"`
	Price              int                        `json:"price"`
	Currency           string                     `json:"currency"`
	RecurringEvent     *eventtypes.RecurringEvent `json:"recurringEvent"`
	Metadata           *models.EventTypeMetadata  `json:"metadata"`
	SeatsShowAttendees bool                       `json:"seatsShowAttendees"`
	Team               *models.TeamRef            `json:"team"`
}

// BlobValidator parses the JSON blobs of an event type.
type BlobValidator interface {
	ParseRecurringEvent(raw json.RawMessage) (*eventtypes.RecurringEvent, error)
	ParseMetadata(raw json.RawMessage) (*models.EventTypeMetadata, error)
}

// attendeesHidden reports whether a seated booking must not reveal its attendees.
func attendeesHidden(b models.Booking) bool {
	return len(b.SeatReferences) > 0 && (b.EventType == nil || !b.EventType.SeatsShowAttendees)
}

// VisibleAttendees returns the attendees the viewer may see. For a seated booking whose event type
// hides attendees, that is at most the viewer's own entry. The input is never modified.
func VisibleAttendees(b models.Booking, viewerEmail string) []models.Attendee {
	if !attendeesHidden(b) {
		return nonNil(b.Attendees)
	}
	for _, a := range b.Attendees {
		if a.Email == viewerEmail {
			return []models.Attendee{a}
		}
	}
	return []models.Attendee{}
}

// visibleSeats applies the same rule to seat references so other seat holders are not exposed.
func visibleSeats(b models.Booking, viewerEmail string) []models.SeatReference {
	if !attendeesHidden(b) {
		return nonNil(b.SeatReferences)
	}
	out := []models.SeatReference{}
	for _, s := range b.SeatReferences {
		if s.Attendee != nil && s.Attendee.Email == viewerEmail {
			out = append(out, s)
		}
	}
	return out
}

// Normalizer turns loaded bookings into their response form.
type Normalizer struct {
	blobs           BlobValidator
	defaultCurrency string
}

// NewNormalizer creates a normalizer. An empty currency falls back to DefaultCurrency.
func NewNormalizer(blobs BlobValidator, defaultCurrency string) *Normalizer {
	if defaultCurrency == "" {
		defaultCurrency = DefaultCurrency
	}
	return &Normalizer{blobs: blobs, defaultCurrency: defaultCurrency}
}

// Normalize redacts attendees, validates event type blobs and applies defaults.
// A blob that fails validation yields a *ValidationError.
func (n *Normalizer) Normalize(b models.Booking, viewer Viewer) (EnrichedBooking, error) {
	out := EnrichedBooking{
		ID:               b.ID,
		UID:              b.UID,
		Title:            b.Title,
		Description:      b.Description,
		Status:           b.Status,
		StartTime:        FormatTime(b.StartTime),
		EndTime:          FormatTime(b.EndTime),
		UserID:           b.UserID,
		RecurringEventID: b.RecurringEventID,
		Rescheduled:      b.Rescheduled,
		IsRecorded:       b.IsRecorded,
		Attendees:        VisibleAttendees(b, viewer.Email),
		Payment:          nonNil(b.Payments),
		SeatsReferences:  visibleSeats(b, viewer.Email),
	}
	if b.EventType == nil {
		return out, nil
	}

	et := b.EventType
	recurring, err := n.blobs.ParseRecurringEvent(et.RecurringEvent)
	if err != nil {
		return EnrichedBooking{}, &ValidationError{BookingID: b.ID, Field: "recurringEvent", Err: err}
	}
	metadata, err := n.blobs.ParseMetadata(et.Metadata)
	if err != nil {
		return EnrichedBooking{}, &ValidationError{BookingID: b.ID, Field: "metadata", Err: err}
	}
	enriched := &EnrichedEventType{
		ID:                 et.ID,
		Slug:               et.Slug,
		Title:              et.Title,
		Currency:           n.defaultCurrency,
		RecurringEvent:     recurring,
		Metadata:           metadata,
		SeatsShowAttendees: et.SeatsShowAttendees,
		Team:               et.Team,
	}
	if et.Price != nil {
		enriched.Price = *et.Price
	}
	if et.Currency != nil && *et.Currency != "" {
		enriched.Currency = *et.Currency
	}
	out.EventType = enriched
	return out, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}
