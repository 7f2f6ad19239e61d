package domain

// Role is a capability tag granted to an account
type Role string

const (
	RoleAdmin     Role = "Admin"     // May assign roles
	RoleSupporter Role = "Supporter" // Non-admin role
	RoleMember    Role = "Member"    // Non-admin role
)

// Roles lists every recognized role in a stable order
var Roles = []Role{RoleAdmin, RoleSupporter, RoleMember}

// ParseRole converts an untrusted role name into a Role. Matching is exact, so
// "member" or "ADMIN" are rejected.
func ParseRole(name string) (Role, error) {
	switch Role(name) {
	case RoleAdmin, RoleSupporter, RoleMember:
		return Role(name), nil
	}
	return "", &InvalidRoleError{Name: name}
}

func (r Role) String() string { return string(r) }
