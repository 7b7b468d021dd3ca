package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrListTrackingEventsQueryIsNotConstructed = errors.New(
		"ListTrackingEventsQuery must be created via NewListTrackingEventsQuery constructor",
	)
	ErrGetLatestTrackingEventQueryIsNotConstructed = errors.New(
		"GetLatestTrackingEventQuery must be created via NewGetLatestTrackingEventQuery constructor",
	)
)

// ListTrackingEventsQuery returns the history of one shipment.
type ListTrackingEventsQuery struct {
	shipmentID kernel.UUID
	order      ports.SortOrder

	guard guard.ConstructorGuard
}

func NewListTrackingEventsQuery(shipmentID kernel.UUID, order ports.SortOrder) (ListTrackingEventsQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return ListTrackingEventsQuery{}, errs.NewValueIsRequiredErrorWithCause("shipmentID", err)
	}
	return ListTrackingEventsQuery{shipmentID: shipmentID, order: order, guard: guard.NewConstructorGuard()}, nil
}

func (q ListTrackingEventsQuery) Validate() error {
	return q.guard.Validate(ErrListTrackingEventsQueryIsNotConstructed)
}

func (q ListTrackingEventsQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

func (q ListTrackingEventsQuery) Order() ports.SortOrder {
	return q.order
}

type GetLatestTrackingEventQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetLatestTrackingEventQuery(shipmentID kernel.UUID) (GetLatestTrackingEventQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetLatestTrackingEventQuery{}, errs.NewValueIsRequiredErrorWithCause("shipmentID", err)
	}
	return GetLatestTrackingEventQuery{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLatestTrackingEventQuery) Validate() error {
	return q.guard.Validate(ErrGetLatestTrackingEventQueryIsNotConstructed)
}

func (q GetLatestTrackingEventQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}
