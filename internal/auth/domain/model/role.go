package model

// Role classifies an authenticated actor for access decisions. The console
// allow-list is closed: ADMIN, ANALYST and SUPPORT may sign in, any other
// value the backend reports (including an empty string) is kept verbatim but
// never passes the gate.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleAnalyst Role = "ANALYST"
	RoleSupport Role = "SUPPORT"
)

// ParseRole is the single classification point for role strings coming off
// the wire. Matching is exact; the backend API emits upper-case role names.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleAnalyst:
		return RoleAnalyst
	case RoleSupport:
		return RoleSupport
	default:
		return Role(s)
	}
}

// Allowed reports whether the role may access the admin console.
func (r Role) Allowed() bool {
	switch r {
	case RoleAdmin, RoleAnalyst, RoleSupport:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
