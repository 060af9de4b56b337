package bookings

import (
	"encoding/json"
	"time"

	"github.com/aura-scheduling/backend/internal/models"
)

// RecurringSeriesSummary summarises the occurrences of one recurring series.
type RecurringSeriesSummary struct {
	RecurringEventID string
	Count            int
	FirstDate        time.Time
	Bookings         map[models.BookingStatus][]time.Time
}

// AggregateRecurring combines the basic and extended aggregates into one summary per series, in the
// order of groups. Every summary carries all five status buckets, empty ones included.
func AggregateRecurring(groups []SeriesGroup, occurrences []SeriesOccurrence) []RecurringSeriesSummary {
	out := make([]RecurringSeriesSummary, 0, len(groups))
	index := make(map[string]int, len(groups))
	for _, g := range groups {
		buckets := make(map[models.BookingStatus][]time.Time, len(models.BookingStatuses))
		for _, s := range models.BookingStatuses {
			buckets[s] = []time.Time{}
		}
		index[g.RecurringEventID] = len(out)
		out = append(out, RecurringSeriesSummary{
			RecurringEventID: g.RecurringEventID,
			Count:            g.Count,
			FirstDate:        g.FirstDate,
			Bookings:         buckets,
		})
	}
	for _, o := range occurrences {
		i, ok := index[o.RecurringEventID]
		if !ok {
			continue
		}
		buckets := out[i].Bookings
		if _, known := buckets[o.Status]; !known {
			continue
		}
		buckets[o.Status] = append(buckets[o.Status], o.StartTime)
	}
	return out
}

// MarshalJSON renders every timestamp in the canonical booking time format.
func (s RecurringSeriesSummary) MarshalJSON() ([]byte, error) {
	buckets := make(map[models.BookingStatus][]string, len(s.Bookings))
	for status, times := range s.Bookings {
		formatted := make([]string, len(times))
		for i, t := range times {
			formatted[i] = FormatTime(t)
		}
		buckets[status] = formatted
	}
	return json.Marshal(struct {
		RecurringEventID string                            `json:"recurringEventId"`
		Count            int                               `json:"count"`
		FirstDate        string                            `json:"firstDate"`
		Bookings         map[models.BookingStatus][]string `json:"bookings"`
	}{s.RecurringEventID, s.Count, FormatTime(s.FirstDate), buckets})
}
