package model

// Role determines the authorization scope of a login account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is one of the fixed roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}

// Privileged reports whether r may run administrative actions.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleHR
}
