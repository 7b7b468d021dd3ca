package shipment

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Status is the lifecycle state of a shipment. The zero value is Unknown and never valid.
// The wire and storage form is the upper-case name returned by String.
type Status int

const (
	Unknown Status = iota

	// Created is assigned on registration, before pickup.
	Created

	// Collected means the parcel was picked up at the origin.
	Collected

	// InTransit means the parcel is moving between branches.
	InTransit

	// AtDestination means the parcel reached the destination branch.
	AtDestination

	// Delivered means the consignee received the parcel. Only a return may follow.
	Delivered

	// Returned is absorbing: the parcel went back to the sender.
	Returned

	// Cancelled is absorbing: the shipment was called off.
	Cancelled
)

func getStatusNames() map[Status]string {
	return map[Status]string{
		Unknown:       "UNKNOWN",
		Created:       "CREADO",
		Collected:     "RECOLECTADO",
		InTransit:     "EN_TRANSITO",
		AtDestination: "EN_DESTINO",
		Delivered:     "ENTREGADO",
		Returned:      "DEVUELTO",
		Cancelled:     "CANCELADO",
	}
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Created, Collected, InTransit, AtDestination, Delivered, Returned, Cancelled}
}

// ParseStatus maps a status name (case-insensitive, surrounding spaces ignored) to its Status.
func ParseStatus(name string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for _, s := range AllStatuses() {
		if getStatusNames()[s] == normalized {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a shipment status", name))
}

// Validate rejects Unknown and out-of-range values, e.g. ones read from storage.
func (s Status) Validate() error {
	if s < Created || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := getStatusNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsAbsorbing reports whether no transition may leave s.
func (s Status) IsAbsorbing() bool {
	return s == Returned || s == Cancelled
}

// IsFinal reports whether the shipment reached the end of its journey. Final shipments
// can no longer be edited, although a delivered one may still be returned.
func (s Status) IsFinal() bool {
	return s == Delivered || s.IsAbsorbing()
}

// CanTransitionTo checks a status change without applying it.
//
// Accepted moves:
//   - forward along CREADO → RECOLECTADO → EN_TRANSITO → EN_DESTINO → ENTREGADO, skipping allowed
//   - DEVUELTO or CANCELADO from any state before ENTREGADO
//   - ENTREGADO → DEVUELTO
//
// Rejected moves return a BusinessRuleViolationError; an invalid target returns a ValueIsInvalidError.
func (s Status) CanTransitionTo(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}

	switch {
	case s.IsAbsorbing():
		return errs.NewBusinessRuleViolationError(
			fmt.Sprintf("shipment in status %s cannot change status", s))
	case next == s:
		return errs.NewBusinessRuleViolationError(
			fmt.Sprintf("shipment is already in status %s", s))
	case s == Delivered:
		if next == Returned {
			return nil
		}
	case next.IsAbsorbing():
		return nil
	case next > s:
		return nil
	}

	return errs.NewBusinessRuleViolationError(
		fmt.Sprintf("transition from %s to %s is not allowed", s, next))
}
