// Package rbac holds the two authorization gates applied to order
// operations.
package rbac

import "errors"

var (
	// ErrUnauthorized means no principal could be resolved for the caller.
	ErrUnauthorized = errors.New("rbac: unauthorized")
	// ErrForbidden means the principal lacks the required role.
	ErrForbidden = errors.New("rbac: forbidden")
)

// Principal is a resolved caller.
type Principal interface {
	Staff() bool
}

// Gate names an authorization requirement.
type Gate int

const (
	// AuthenticatedOnly admits any resolved principal.
	AuthenticatedOnly Gate = iota
	// StaffOnly admits principals with the staff role.
	StaffOnly
)

func (g Gate) String() string {
	switch g {
	case AuthenticatedOnly:
		return "authenticated"
	case StaffOnly:
		return "staff"
	}
	return "unknown"
}

// Check returns nil when p passes gate g.
func Check(g Gate, p Principal) error {
	if p == nil {
		return ErrUnauthorized
	}
	if g == StaffOnly && !p.Staff() {
		return ErrForbidden
	}
	return nil
}
