// Package parcel models the individual packages carried by a shipment. Packages are
// descriptive only: they never influence price or status.
package parcel

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	DescriptionMaxLength = 200
	DimensionsMaxLength  = 50
)

var ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage constructor")

type Package struct {
	id            kernel.UUID
	shipmentID    kernel.UUID
	description   string
	declaredValue decimal.Decimal
	weight        decimal.Decimal
	dimensions    string

	guard guard.ConstructorGuard
}

// NewPackage builds a package. dimensions is free text such as "30x20x15 cm".
func NewPackage(
	id, shipmentID kernel.UUID,
	description string,
	declaredValue, weight decimal.Decimal,
	dimensions string,
) (*Package, error) {
	p := &Package{guard: guard.NewConstructorGuard()}

	var descErr, dimErr, valueErr, weightErr error
	p.description, descErr = kernel.RequiredText("description", description, DescriptionMaxLength)
	p.dimensions, dimErr = kernel.OptionalText("dimensions", dimensions, DimensionsMaxLength)

	if declaredValue.IsNegative() {
		valueErr = errs.NewValueIsInvalidError("declared value must not be negative")
	}
	if !weight.IsPositive() {
		weightErr = errs.NewValueIsInvalidError("weight must be greater than 0")
	}

	if err := errors.Join(id.Validate(), shipmentID.Validate(), descErr, dimErr, valueErr, weightErr); err != nil {
		return nil, err
	}

	p.id = id
	p.shipmentID = shipmentID
	p.declaredValue = declaredValue.Round(2)
	p.weight = weight.Round(2)
	return p, nil
}

func (p *Package) Validate() error {
	if p == nil {
		return ErrPackageIsNotConstructed
	}
	return p.guard.Validate(ErrPackageIsNotConstructed)
}

func (p *Package) ID() kernel.UUID {
	return p.id
}

func (p *Package) ShipmentID() kernel.UUID {
	return p.shipmentID
}

func (p *Package) Description() string {
	return p.description
}

func (p *Package) DeclaredValue() decimal.Decimal {
	return p.declaredValue
}

func (p *Package) Weight() decimal.Decimal {
	return p.weight
}

func (p *Package) Dimensions() string {
	return p.dimensions
}
