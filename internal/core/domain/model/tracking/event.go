// Package tracking models the entries of a shipment's tracking ledger.
//
// An Event is a milestone in the life of a shipment: a status change or a free-form
// checkpoint such as "arrived at sorting center". Events are immutable once appended;
// the ledger only ever grows and is read in chronological order.
package tracking

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

const (
	LabelMaxLength    = 100
	LocationMaxLength = 100
	NotesMaxLength    = 1000
)

var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent constructor")

// Event is a single tracking ledger entry.
//
// The acting user is a weak reference: deleting the user leaves the history intact.
// A zero OccurredAt means "not stamped yet"; the ledger stamps it on append.
type Event struct {
	id         kernel.UUID
	shipmentID kernel.UUID
	occurredAt time.Time
	location   string
	label      string
	userID     *kernel.UUID
	notes      string

	guard guard.ConstructorGuard
}

// NewEvent builds an unstamped event. location, userID and notes are optional.
//
// Example:
//
//	event, err := tracking.NewEvent(kernel.NewUUID(), shipmentID, shipment.InTransit.String(),
//	    "Medellín hub", &operatorID, "left on truck 12")
func NewEvent(
	id, shipmentID kernel.UUID,
	label, location string,
	userID *kernel.UUID,
	notes string,
) (Event, error) {
	e := Event{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		e.setIDs(id, shipmentID),
		e.setLabel(label),
		e.setLocation(location),
		e.setUserID(userID),
		e.setNotes(notes),
	); err != nil {
		return Event{}, err
	}

	return e, nil
}

// RestoreEvent rebuilds a persisted event.
func RestoreEvent(
	id, shipmentID kernel.UUID,
	occurredAt time.Time,
	label, location string,
	userID *kernel.UUID,
	notes string,
) (Event, error) {
	e, err := NewEvent(id, shipmentID, label, location, userID, notes)
	if err != nil {
		return Event{}, err
	}
	return e.Stamped(occurredAt), nil
}

// Stamped returns a copy carrying occurredAt in UTC at microsecond precision.
func (e Event) Stamped(occurredAt time.Time) Event {
	e.occurredAt = occurredAt.UTC().Truncate(time.Microsecond)
	return e
}

func (e Event) IsStamped() bool {
	return !e.occurredAt.IsZero()
}

func (e Event) Validate() error {
	return e.guard.Validate(ErrEventIsNotConstructed)
}

func (e Event) ID() kernel.UUID {
	return e.id
}

func (e Event) ShipmentID() kernel.UUID {
	return e.shipmentID
}

func (e Event) OccurredAt() time.Time {
	return e.occurredAt
}

func (e Event) Location() string {
	return e.location
}

func (e Event) Label() string {
	return e.label
}

// UserID is nil for events recorded by the system.
func (e Event) UserID() *kernel.UUID {
	if e.userID == nil {
		return nil
	}
	id := *e.userID
	return &id
}

func (e Event) Notes() string {
	return e.notes
}

func (e *Event) setIDs(id, shipmentID kernel.UUID) error {
	if err := errors.Join(id.Validate(), shipmentID.Validate()); err != nil {
		return err
	}
	e.id = id
	e.shipmentID = shipmentID
	return nil
}

func (e *Event) setLabel(label string) (err error) {
	e.label, err = kernel.RequiredText("label", label, LabelMaxLength)
	return err
}

func (e *Event) setLocation(location string) (err error) {
	e.location, err = kernel.OptionalText("location", location, LocationMaxLength)
	return err
}

func (e *Event) setNotes(notes string) (err error) {
	e.notes, err = kernel.OptionalText("notes", notes, NotesMaxLength)
	return err
}

func (e *Event) setUserID(userID *kernel.UUID) error {
	if userID == nil {
		return nil
	}
	if err := userID.Validate(); err != nil {
		return err
	}
	id := *userID
	e.userID = &id
	return nil
}
