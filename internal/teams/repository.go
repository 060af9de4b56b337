package teams

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aura-scheduling/backend/internal/models"
)

// Repository handles team and membership lookups.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a teams repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// MyTeam is a team the user belongs to together with the user's membership.
type MyTeam struct {
	models.Team
	Role     string `json:"role"`
	Accepted bool   `json:"accepted"`
	Admin    bool   `json:"admin"`
}

// ListTeamsForUser returns teams the user is a member of (for GET /teams), parents first.
func (r *Repository) ListTeamsForUser(ctx context.Context, userID int) ([]MyTeam, error) {
	const q = `SELECT t.id, t.name, t.slug, t.parent_id, t.is_organization, m.role, m.accepted
		FROM teams t
		INNER JOIN memberships m ON m.team_id = t.id
		WHERE m.user_id = $1
		ORDER BY t.is_organization DESC, t.name`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []MyTeam
	for rows.Next() {
		var t MyTeam
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.ParentID, &t.IsOrganization, &t.Role, &t.Accepted); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// AdminTeamsQuery selects ids of teams the user in placeholder userArg administers: accepted ADMIN or
// OWNER memberships, plus the child teams of organizations administered that way. The booking
// visibility queries embed it, so /teams and /bookings agree on what a viewer administers.
func AdminTeamsQuery(userArg string) string {
	return `SELECT m.team_id FROM memberships m
			WHERE m.user_id = ` + userArg + ` AND m.accepted AND m.role IN ('ADMIN', 'OWNER')
		UNION
		SELECT t.id FROM teams t
			JOIN memberships m ON m.team_id = t.parent_id
			WHERE m.user_id = ` + userArg + ` AND m.accepted AND m.role IN ('ADMIN', 'OWNER')`
}

// AdminTeamIDs returns ids of teams the user administers, see AdminTeamsQuery.
func (r *Repository) AdminTeamIDs(ctx context.Context, userID int) ([]int, error) {
	q := AdminTeamsQuery("$1") + `
		ORDER BY 1`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
