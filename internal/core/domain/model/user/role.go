package user

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Role scopes what an authenticated user may do.
type Role int

const (
	RoleUnknown Role = iota

	// Admin manages users, branches and may delete shipments.
	Admin

	// Operator runs day-to-day shipment handling.
	Operator

	// Customer may only read its own shipments.
	Customer
)

func getRoleNames() map[Role]string {
	return map[Role]string{
		RoleUnknown: "UNKNOWN",
		Admin:       "ADMIN",
		Operator:    "OPERADOR",
		Customer:    "CLIENTE",
	}
}

// ParseRole maps a role name (case-insensitive) to its Role.
func ParseRole(name string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for _, r := range []Role{Admin, Operator, Customer} {
		if getRoleNames()[r] == normalized {
			return r, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a role", name))
}

func (r Role) Validate() error {
	if r < Admin || r > Customer {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if name, ok := getRoleNames()[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsStaff reports whether the role has full shipment access.
func (r Role) IsStaff() bool {
	return r == Admin || r == Operator
}
