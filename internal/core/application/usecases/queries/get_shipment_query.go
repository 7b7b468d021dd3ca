package queries

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentByIDQuery or NewGetShipmentByCodeQuery constructor",
)

// GetShipmentQuery looks a shipment up either by id or by tracking code.
//
// Example:
//
//	query, err := NewGetShipmentByCodeQuery("ENV1718035200123042")
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetShipmentQuery struct {
	id   kernel.UUID
	code string

	guard guard.ConstructorGuard
}

func NewGetShipmentByIDQuery(id kernel.UUID) (GetShipmentQuery, error) {
	if err := id.Validate(); err != nil {
		return GetShipmentQuery{}, errs.NewValueIsRequiredErrorWithCause("shipmentID", err)
	}
	return GetShipmentQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func NewGetShipmentByCodeQuery(code string) (GetShipmentQuery, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return GetShipmentQuery{}, errs.NewValueIsRequiredError("code")
	}
	return GetShipmentQuery{code: code, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// ByCode reports whether the query selects by tracking code.
func (q GetShipmentQuery) ByCode() bool {
	return q.code != ""
}

func (q GetShipmentQuery) ID() kernel.UUID {
	return q.id
}

func (q GetShipmentQuery) Code() string {
	return q.code
}
