package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateShipmentCommandIsNotConstructed = errors.New(
	"UpdateShipmentCommand must be created via NewUpdateShipmentCommand constructor",
)

// UpdateShipmentCommand replaces the editable fields of a shipment. Status and code
// are not part of it.
type UpdateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID    kernel.UUID
	customerID    kernel.UUID
	originID      kernel.UUID
	destinationID kernel.UUID
	weight        decimal.Decimal
	notes         string

	guard guard.ConstructorGuard
}

func NewUpdateShipmentCommand(
	shipmentID, customerID, originID, destinationID kernel.UUID,
	weight decimal.Decimal,
	notes string,
) (UpdateShipmentCommand, error) {
	if err := errors.Join(
		requireID("shipmentID", shipmentID),
		requireID("customerID", customerID),
		requireID("originID", originID),
		requireID("destinationID", destinationID),
	); err != nil {
		return UpdateShipmentCommand{}, err
	}
	if !weight.IsPositive() {
		return UpdateShipmentCommand{}, errs.NewValueIsInvalidError("weight must be greater than 0")
	}

	return UpdateShipmentCommand{
		shipmentID:    shipmentID,
		customerID:    customerID,
		originID:      originID,
		destinationID: destinationID,
		weight:        weight,
		notes:         notes,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentCommandIsNotConstructed)
}

func (c UpdateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c UpdateShipmentCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c UpdateShipmentCommand) OriginID() kernel.UUID {
	return c.originID
}

func (c UpdateShipmentCommand) DestinationID() kernel.UUID {
	return c.destinationID
}

func (c UpdateShipmentCommand) Weight() decimal.Decimal {
	return c.weight
}

func (c UpdateShipmentCommand) Notes() string {
	return c.notes
}
