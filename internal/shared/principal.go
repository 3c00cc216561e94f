package shared

import "time"

// Role is a global account role, independent of any team.
type Role string

// Global roles ordered from least to most privileged.
const (
	RoleGuest      Role = "guest"
	RolePlayer     Role = "player"
	RoleCoach      Role = "coach"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// Valid reports whether the role is one of the known global roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RolePlayer, RoleCoach, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// AdminTier reports whether the role carries admin-level override.
func (r Role) AdminTier() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// TeamRole is a role scoped to a single team membership.
type TeamRole string

const (
	TeamRolePlayer TeamRole = "player"
	TeamRoleCoach  TeamRole = "coach"
)

// Valid reports whether the team role is known.
func (r TeamRole) Valid() bool {
	return r == TeamRolePlayer || r == TeamRoleCoach
}

// Principal is the authenticated user identity attached to a request.
type Principal struct {
	ID        int64
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
