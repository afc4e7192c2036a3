package authz

import "fmt"

// Role is the closed set of authorization roles a user can hold.
// A user holds exactly one role; the zero value is invalid and always denied.
type Role string

const (
	RoleAdmin          Role = "Admin"
	RoleProjectManager Role = "ProjectManager"
	RoleTeamMember     Role = "TeamMember"
)

// Roles lists every valid role, in privilege order.
var Roles = []Role{RoleAdmin, RoleProjectManager, RoleTeamMember}

// ParseRole converts a stored role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleProjectManager, RoleTeamMember:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProjectManager, RoleTeamMember:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
