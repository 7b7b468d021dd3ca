package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/guard"
)

var ErrChangeShipmentStatusCommandIsNotConstructed = errors.New(
	"ChangeShipmentStatusCommand must be created via NewChangeShipmentStatusCommand constructor",
)

// ChangeShipmentStatusCommand moves a shipment to a new status and records the
// milestone in its ledger. The status arrives as its name, e.g. "EN_TRANSITO".
type ChangeShipmentStatusCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	status     shipment.Status
	location   string
	notes      string
	actorID    *kernel.UUID

	guard guard.ConstructorGuard
}

// NewChangeShipmentStatusCommand returns ValueIsInvalidError for names outside the
// seven shipment statuses.
func NewChangeShipmentStatusCommand(
	shipmentID kernel.UUID,
	status string,
	location, notes string,
	actorID *kernel.UUID,
) (ChangeShipmentStatusCommand, error) {
	parsed, statusErr := shipment.ParseStatus(status)
	if err := errors.Join(requireID("shipmentID", shipmentID), statusErr); err != nil {
		return ChangeShipmentStatusCommand{}, err
	}

	return ChangeShipmentStatusCommand{
		shipmentID: shipmentID,
		status:     parsed,
		location:   location,
		notes:      notes,
		actorID:    actorID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeShipmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeShipmentStatusCommandIsNotConstructed)
}

func (c ChangeShipmentStatusCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c ChangeShipmentStatusCommand) Status() shipment.Status {
	return c.status
}

func (c ChangeShipmentStatusCommand) Location() string {
	return c.location
}

func (c ChangeShipmentStatusCommand) Notes() string {
	return c.notes
}

func (c ChangeShipmentStatusCommand) ActorID() *kernel.UUID {
	return c.actorID
}
