package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand registers a shipment. The caller chooses the id so it can
// read the shipment back after Handle returns.
//
// Example:
//
//	shipmentID := kernel.NewUUID()
//	cmd, err := NewCreateShipmentCommand(shipmentID, customerID, originID, destinationID,
//	    decimal.RequireFromString("2.5"), "fragile", &principal.UserID)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID    kernel.UUID
	customerID    kernel.UUID
	originID      kernel.UUID
	destinationID kernel.UUID
	weight        decimal.Decimal
	notes         string
	actorID       *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand checks identifiers and that weight is positive. Length
// limits are enforced by the aggregate. actorID may be nil for system callers.
func NewCreateShipmentCommand(
	shipmentID, customerID, originID, destinationID kernel.UUID,
	weight decimal.Decimal,
	notes string,
	actorID *kernel.UUID,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		notes:   notes,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(shipmentID, customerID, originID, destinationID),
		cmd.setWeight(weight),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c CreateShipmentCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateShipmentCommand) OriginID() kernel.UUID {
	return c.originID
}

func (c CreateShipmentCommand) DestinationID() kernel.UUID {
	return c.destinationID
}

func (c CreateShipmentCommand) Weight() decimal.Decimal {
	return c.weight
}

func (c CreateShipmentCommand) Notes() string {
	return c.notes
}

func (c CreateShipmentCommand) ActorID() *kernel.UUID {
	return c.actorID
}

func (c *CreateShipmentCommand) setIDs(shipmentID, customerID, originID, destinationID kernel.UUID) error {
	if err := errors.Join(
		requireID("shipmentID", shipmentID),
		requireID("customerID", customerID),
		requireID("originID", originID),
		requireID("destinationID", destinationID),
	); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	c.customerID = customerID
	c.originID = originID
	c.destinationID = destinationID
	return nil
}

func (c *CreateShipmentCommand) setWeight(weight decimal.Decimal) error {
	if !weight.IsPositive() {
		return errs.NewValueIsInvalidError("weight must be greater than 0")
	}

	c.weight = weight
	return nil
}

func requireID(paramName string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(paramName, err)
	}
	return nil
}
