package bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aura-scheduling/backend/internal/models"
	"github.com/aura-scheduling/backend/internal/teams"
)

// Repository runs booking queries against PostgreSQL. All queries are read-only.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a bookings repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// sqlPath is a visibility path expressed as an extra WHERE clause.
type sqlPath struct {
	name   string
	pool   *pgxpool.Pool
	clause func(a *sqlArgs, v Viewer) string
}

func (p *sqlPath) Name() string { return p.name }

// Fetch returns booking refs visible through this path.
func (p *sqlPath) Fetch(ctx context.Context, q Query) ([]Ref, error) {
	sql, args := buildPathQuery(p.clause, q)
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var refs []Ref
	for rows.Next() {
		var r Ref
		if err := rows.Scan(&r.ID, &r.UID, &r.StartTime); err != nil {
			return nil, err
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

func buildPathQuery(clause func(a *sqlArgs, v Viewer) string, q Query) (string, []any) {
	a := &sqlArgs{}
	path := clause(a, q.Viewer)
	pred := q.Predicate.SQL(a)
	dir := q.Order.String()
	sql := `SELECT b.id, b.uid, b.start_time
		FROM bookings b
		LEFT JOIN event_types et ON et.id = b.event_type_id
		WHERE (` + path + `) AND ` + pred + `
		ORDER BY b.start_time ` + dir + `, b.id ` + dir + `
		LIMIT ` + a.add(q.Take) + ` OFFSET ` + a.add(q.Skip)
	return sql, a.vals
}

func ownerClause(a *sqlArgs, v Viewer) string {
	return "b.user_id = " + a.add(v.ID)
}

func attendeeClause(a *sqlArgs, v Viewer) string {
	return `EXISTS (SELECT 1 FROM attendees a WHERE a.booking_id = b.id AND a.email = ` + a.add(v.Email) + `)`
}

// teamEventClause matches team event types and managed-event children whose parent is a team event type.
func teamEventClause(a *sqlArgs, v Viewer) string {
	admin := teams.AdminTeamsQuery(a.add(v.ID))
	return `et.team_id IN (` + admin + `)
		OR et.parent_id IN (SELECT pet.id FROM event_types pet WHERE pet.team_id IN (` + admin + `))`
}

// teamPersonalClause matches personal bookings of members of administered teams that sit inside an
// organization. Team and managed event types are left to the team event path.
func teamPersonalClause(a *sqlArgs, v Viewer) string {
	return `EXISTS (
			SELECT 1 FROM memberships om
			JOIN teams ot ON ot.id = om.team_id
			WHERE om.user_id = b.user_id
				AND ot.parent_id IS NOT NULL
				AND ot.id IN (` + teams.AdminTeamsQuery(a.add(v.ID)) + `)
		)
		AND et.team_id IS NULL
		AND et.parent_id IS NULL`
}

func seatHolderClause(a *sqlArgs, v Viewer) string {
	return `EXISTS (
			SELECT 1 FROM booking_seats s
			JOIN attendees sa ON sa.id = s.attendee_id
			WHERE s.booking_id = b.id AND sa.email = ` + a.add(v.Email) + `
		)`
}

// Paths returns the five visibility paths in merge order.
func (r *Repository) Paths() []VisibilityPath {
	return []VisibilityPath{
		&sqlPath{name: PathOwner, pool: r.pool, clause: ownerClause},
		&sqlPath{name: PathAttendee, pool: r.pool, clause: attendeeClause},
		&sqlPath{name: PathTeamEvent, pool: r.pool, clause: teamEventClause},
		&sqlPath{name: PathTeamPersonal, pool: r.pool, clause: teamPersonalClause},
		&sqlPath{name: PathSeatHolder, pool: r.pool, clause: seatHolderClause},
	}
}

func enrichQuery(order Order) string {
	dir := order.String()
	return `SELECT b.id, b.uid, b.recurring_event_id, b.status, b.title, COALESCE(b.description, ''),
			b.start_time, b.end_time, b.user_id, b.event_type_id, b.rescheduled, b.is_recorded, b.created_at,
			et.id, et.slug, et.title, et.price, et.currency, et.recurring_event, et.metadata,
			COALESCE(et.seats_show_attendees, FALSE), et.team_id, et.parent_id,
			t.id, t.name, t.slug,
			COALESCE((SELECT json_agg(json_build_object(
					'id', a.id, 'email', a.email, 'name', a.name, 'timeZone', a.time_zone, 'locale', a.locale
				) ORDER BY a.id) FROM attendees a WHERE a.booking_id = b.id), '[]'),
			COALESCE((SELECT json_agg(json_build_object(
					'id', s.id, 'referenceUid', s.reference_uid, 'attendeeId', s.attendee_id, 'data', s.data,
					'attendee', json_build_object('id', sa.id, 'email', sa.email, 'name', sa.name, 'timeZone', sa.time_zone)
				) ORDER BY s.id) FROM booking_seats s JOIN attendees sa ON sa.id = s.attendee_id WHERE s.booking_id = b.id), '[]'),
			COALESCE((SELECT json_agg(json_build_object(
					'id', p.id, 'uid', p.uid, 'amount', p.amount, 'currency', p.currency,
					'success', p.success, 'refunded', p.refunded, 'paid', p.paid
				) ORDER BY p.id) FROM payments p WHERE p.booking_id = b.id), '[]')
		FROM bookings b
		LEFT JOIN event_types et ON et.id = b.event_type_id
		LEFT JOIN teams t ON t.id = et.team_id
		WHERE b.id = ANY($1)
		ORDER BY b.start_time ` + dir + `, b.id ` + dir
}

// BookingsByIDs loads the full projection of the given bookings, sorted by start time in order.
func (r *Repository) BookingsByIDs(ctx context.Context, ids []int, order Order) ([]models.Booking, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, enrichQuery(order), ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Booking
	for rows.Next() {
		var (
			b                          models.Booking
			status                     string
			etID, price                *int
			etTeamID, etParentID       *int
			etSlug, etTitle, currency  *string
			recurringEvent, metadata   []byte
			seatsShowAttendees         bool
			teamID                     *int
			teamName, teamSlug         *string
			attendees, seats, payments []byte
		)
		if err := rows.Scan(
			&b.ID, &b.UID, &b.RecurringEventID, &status, &b.Title, &b.Description,
			&b.StartTime, &b.EndTime, &b.UserID, &b.EventTypeID, &b.Rescheduled, &b.IsRecorded, &b.CreatedAt,
			&etID, &etSlug, &etTitle, &price, &currency, &recurringEvent, &metadata,
			&seatsShowAttendees, &etTeamID, &etParentID,
			&teamID, &teamName, &teamSlug,
			&attendees, &seats, &payments,
		); err != nil {
			return nil, err
		}
		b.Status = models.BookingStatus(status)
		if etID != nil {
			et := &models.EventType{
				ID:                 *etID,
				Slug:               deref(etSlug),
				Title:              deref(etTitle),
				Price:              price,
				Currency:           currency,
				RecurringEvent:     recurringEvent,
				Metadata:           metadata,
				SeatsShowAttendees: seatsShowAttendees,
				TeamID:             etTeamID,
				ParentID:           etParentID,
			}
			if teamID != nil {
				et.Team = &models.TeamRef{ID: *teamID, Name: deref(teamName), Slug: deref(teamSlug)}
			}
			b.EventType = et
		}
		if err := json.Unmarshal(attendees, &b.Attendees); err != nil {
			return nil, fmt.Errorf("decode attendees of booking %d: %w", b.ID, err)
		}
		if err := json.Unmarshal(seats, &b.SeatReferences); err != nil {
			return nil, fmt.Errorf("decode seats of booking %d: %w", b.ID, err)
		}
		if err := json.Unmarshal(payments, &b.Payments); err != nil {
			return nil, fmt.Errorf("decode payments of booking %d: %w", b.ID, err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// SeriesGroup is one row of the basic recurring aggregate.
type SeriesGroup struct {
	RecurringEventID string
	Count            int
	FirstDate        time.Time
}

// SeriesOccurrence is one row of the extended recurring aggregate.
type SeriesOccurrence struct {
	RecurringEventID string
	Status           models.BookingStatus
	StartTime        time.Time
}

// RecurringSeries groups the owner's bookings by series id with count and earliest start.
func (r *Repository) RecurringSeries(ctx context.Context, ownerID int) ([]SeriesGroup, error) {
	const q = `SELECT recurring_event_id, COUNT(*), MIN(start_time)
		FROM bookings
		WHERE user_id = $1 AND recurring_event_id IS NOT NULL
		GROUP BY recurring_event_id
		ORDER BY recurring_event_id`
	rows, err := r.pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []SeriesGroup
	for rows.Next() {
		var g SeriesGroup
		if err := rows.Scan(&g.RecurringEventID, &g.Count, &g.FirstDate); err != nil {
			return nil, err
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

// RecurringOccurrences groups the owner's bookings by series id, status and start time.
func (r *Repository) RecurringOccurrences(ctx context.Context, ownerID int) ([]SeriesOccurrence, error) {
	const q = `SELECT recurring_event_id, status, MIN(start_time)
		FROM bookings
		WHERE user_id = $1 AND recurring_event_id IS NOT NULL
		GROUP BY recurring_event_id, status, start_time
		ORDER BY recurring_event_id, start_time`
	rows, err := r.pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []SeriesOccurrence
	for rows.Next() {
		var o SeriesOccurrence
		var status string
		if err := rows.Scan(&o.RecurringEventID, &status, &o.StartTime); err != nil {
			return nil, err
		}
		o.Status = models.BookingStatus(status)
		list = append(list, o)
	}
	return list, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
