// Package eventtypes validates the JSON blobs stored on event types.
package eventtypes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"

	"github.com/aura-scheduling/backend/internal/models"
)

// Validator checks recurrence rules and metadata blobs. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a blob validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// RecurringEvent is a validated recurrence rule together with its RFC 5545 form.
type RecurringEvent struct {
	models.RecurringEvent
	RRule string `json:"rrule"`
}

// ParseRecurringEvent decodes and validates a recurrence rule. A null or empty blob yields nil.
func (v *Validator) ParseRecurringEvent(raw json.RawMessage) (*RecurringEvent, error) {
	if isEmpty(raw) {
		return nil, nil
	}
	var re models.RecurringEvent
	if err := json.Unmarshal(raw, &re); err != nil {
		return nil, fmt.Errorf("decode recurring event: %w", err)
	}
	if err := v.validate.Struct(re); err != nil {
		return nil, fmt.Errorf("recurring event: %w", err)
	}

	opt := rrule.ROption{
		Freq:     rrule.Frequency(re.Freq),
		Interval: re.Interval,
		Count:    re.Count,
	}
	if re.DTStart != nil {
		opt.Dtstart = *re.DTStart
	}
	if re.Until != nil {
		opt.Until = *re.Until
	}
	if re.TzID != "" {
		if _, err := time.LoadLocation(re.TzID); err != nil {
			return nil, fmt.Errorf("recurring event tzid %q: %w", re.TzID, err)
		}
	}
	if _, err := rrule.NewRRule(opt); err != nil {
		return nil, fmt.Errorf("recurring event rule: %w", err)
	}
	return &RecurringEvent{RecurringEvent: re, RRule: opt.RRuleString()}, nil
}

// ParseMetadata decodes and validates an event type metadata blob. A null or empty blob yields nil.
func (v *Validator) ParseMetadata(raw json.RawMessage) (*models.EventTypeMetadata, error) {
	if isEmpty(raw) {
		return nil, nil
	}
	var md models.EventTypeMetadata
	if err := json.Unmarshal(raw, &md); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if err := v.validate.Struct(md); err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	return &md, nil
}

func isEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
