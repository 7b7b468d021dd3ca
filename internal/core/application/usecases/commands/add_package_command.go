package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAddPackageCommandIsNotConstructed = errors.New(
	"AddPackageCommand must be created via NewAddPackageCommand constructor",
)

// AddPackageCommand attaches a package description to a shipment. Package weights are
// informational and do not reprice the shipment.
type AddPackageCommand struct { //nolint:recvcheck //using for validation
	packageID     kernel.UUID
	shipmentID    kernel.UUID
	description   string
	declaredValue decimal.Decimal
	weight        decimal.Decimal
	dimensions    string

	guard guard.ConstructorGuard
}

func NewAddPackageCommand(
	packageID, shipmentID kernel.UUID,
	description string,
	declaredValue, weight decimal.Decimal,
	dimensions string,
) (AddPackageCommand, error) {
	if err := errors.Join(requireID("packageID", packageID), requireID("shipmentID", shipmentID)); err != nil {
		return AddPackageCommand{}, err
	}

	return AddPackageCommand{
		packageID:     packageID,
		shipmentID:    shipmentID,
		description:   description,
		declaredValue: declaredValue,
		weight:        weight,
		dimensions:    dimensions,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c AddPackageCommand) Validate() error {
	return c.guard.Validate(ErrAddPackageCommandIsNotConstructed)
}

func (c AddPackageCommand) PackageID() kernel.UUID {
	return c.packageID
}

func (c AddPackageCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c AddPackageCommand) Description() string {
	return c.description
}

func (c AddPackageCommand) DeclaredValue() decimal.Decimal {
	return c.declaredValue
}

func (c AddPackageCommand) Weight() decimal.Decimal {
	return c.weight
}

func (c AddPackageCommand) Dimensions() string {
	return c.dimensions
}
