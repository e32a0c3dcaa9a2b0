package domain

import "fmt"

// Role is the closed set of authorization roles a user can hold.
type Role string

const (
	// RoleAdmin may mutate any resource regardless of ownership.
	RoleAdmin Role = "ADMIN"

	// RoleVisitor may only mutate resources they own.
	RoleVisitor Role = "VISITOR"
)

// ParseRole converts a raw string into a Role.
// Returns ErrInvalidRole for anything outside the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleVisitor:
		return RoleVisitor, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleVisitor
}

// Principal is the authenticated identity attached to a request after
// credential verification. It is immutable for the request's lifetime.
type Principal struct {
	ID   int64
	Role Role
}
