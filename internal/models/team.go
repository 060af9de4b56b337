package models

// Membership roles. Only ADMIN and OWNER grant visibility over team bookings.
const (
	MembershipRoleMember = "MEMBER"
	MembershipRoleAdmin  = "ADMIN"
	MembershipRoleOwner  = "OWNER"
)

// Team is a team or, when IsOrganization is set, an organization. Teams may have a parent organization.
type Team struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	ParentID       *int   `json:"parentId,omitempty"`
	IsOrganization bool   `json:"isOrganization"`
}

// IsAdminRole reports whether role grants admin visibility.
func IsAdminRole(role string) bool {
	return role == MembershipRoleAdmin || role == MembershipRoleOwner
}
