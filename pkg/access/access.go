package access

import "strings"

// Role is a user role issued by the banking API
type Role string

const (
	Client     Role = "CLIENT"
	AgentAdmin Role = "AGENT_ADMIN"
	SuperAdmin Role = "SUPER_ADMIN"
	User       Role = "USER"
	Admin      Role = "ADMIN"
)

// Decision is the outcome of a role check
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	Unauthorized
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "login"
	case Unauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// ParseRole normalizes a role name. Unknown names are returned upper-cased
// so that they fail every membership check.
func ParseRole(s string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(s)))
}

// Decide gates a route. Without a role the caller must log in; an empty
// allowed set admits any logged-in role.
func Decide(role Role, allowed []Role) Decision {
	if role == "" {
		return RedirectLogin
	}
	if len(allowed) == 0 || HasRole(role, allowed) {
		return Allow
	}
	return Unauthorized
}

// HasRole reports whether role is one of roles
func HasRole(role Role, roles []Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
