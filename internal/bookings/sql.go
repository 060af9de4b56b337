package bookings

import (
	"strconv"
	"strings"
)

// sqlArgs collects positional query arguments.
type sqlArgs struct {
	vals []any
}

// add appends v and returns its placeholder.
func (a *sqlArgs) add(v any) string {
	a.vals = append(a.vals, v)
	return "$" + strconv.Itoa(len(a.vals))
}

const notCancelledOrRejected = `b.status NOT IN ('CANCELLED', 'REJECTED')`

// SQL renders the predicate against bookings aliased as b joined to event_types aliased as et.
func (p Predicate) SQL(a *sqlArgs) string {
	var conds []string
	switch p.Status {
	case StatusUpcoming:
		conds = append(conds,
			"b.end_time >= "+a.add(p.Now),
			"((b.recurring_event_id IS NOT NULL AND b.status = 'ACCEPTED') OR (b.recurring_event_id IS NULL AND "+notCancelledOrRejected+"))",
		)
	case StatusRecurring:
		conds = append(conds,
			"b.end_time >= "+a.add(p.Now),
			"b.recurring_event_id IS NOT NULL",
			notCancelledOrRejected,
		)
	case StatusPast:
		conds = append(conds,
			"b.end_time <= "+a.add(p.Now),
			notCancelledOrRejected,
		)
	case StatusCancelled:
		conds = append(conds, `b.status IN ('CANCELLED', 'REJECTED')`)
	case StatusUnconfirmed:
		conds = append(conds,
			"b.end_time >= "+a.add(p.Now),
			"b.status = 'PENDING'",
		)
	default:
		conds = append(conds, "FALSE")
	}

	if p.TeamIDs != nil {
		conds = append(conds, "et.team_id = ANY("+a.add(p.TeamIDs)+")")
	}
	if p.UserIDs != nil {
		conds = append(conds, "b.user_id = ANY("+a.add(p.UserIDs)+")")
	}
	if p.EventTypeIDs != nil {
		conds = append(conds, "b.event_type_id = ANY("+a.add(p.EventTypeIDs)+")")
	}
	if p.AfterStartDate != nil {
		conds = append(conds, "b.start_time >= "+a.add(*p.AfterStartDate))
	}
	if p.BeforeEndDate != nil {
		conds = append(conds, "b.end_time <= "+a.add(*p.BeforeEndDate))
	}
	return strings.Join(conds, " AND ")
}
