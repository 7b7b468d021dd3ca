package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrAppendTrackingEventCommandIsNotConstructed = errors.New(
	"AppendTrackingEventCommand must be created via NewAppendTrackingEventCommand constructor",
)

// AppendTrackingEventCommand records a free-form milestone ("arrived at hub",
// "customs hold") that does not change the shipment status.
type AppendTrackingEventCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	label      string
	location   string
	notes      string
	actorID    *kernel.UUID

	guard guard.ConstructorGuard
}

func NewAppendTrackingEventCommand(
	shipmentID kernel.UUID,
	label, location, notes string,
	actorID *kernel.UUID,
) (AppendTrackingEventCommand, error) {
	var labelErr error
	if label == "" {
		labelErr = errs.NewValueIsRequiredError("label")
	}
	if err := errors.Join(requireID("shipmentID", shipmentID), labelErr); err != nil {
		return AppendTrackingEventCommand{}, err
	}

	return AppendTrackingEventCommand{
		shipmentID: shipmentID,
		label:      label,
		location:   location,
		notes:      notes,
		actorID:    actorID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AppendTrackingEventCommand) Validate() error {
	return c.guard.Validate(ErrAppendTrackingEventCommandIsNotConstructed)
}

func (c AppendTrackingEventCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c AppendTrackingEventCommand) Label() string {
	return c.label
}

func (c AppendTrackingEventCommand) Location() string {
	return c.location
}

func (c AppendTrackingEventCommand) Notes() string {
	return c.notes
}

func (c AppendTrackingEventCommand) ActorID() *kernel.UUID {
	return c.actorID
}
