package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrListPackagesQueryIsNotConstructed = errors.New(
	"ListPackagesQuery must be created via NewListPackagesQuery constructor",
)

type ListPackagesQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListPackagesQuery(shipmentID kernel.UUID) (ListPackagesQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return ListPackagesQuery{}, errs.NewValueIsRequiredErrorWithCause("shipmentID", err)
	}
	return ListPackagesQuery{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPackagesQuery) Validate() error {
	return q.guard.Validate(ErrListPackagesQueryIsNotConstructed)
}

func (q ListPackagesQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}
