package commands

import (
	"context"

	"logistics/internal/core/domain/model/shipment"
)

// UpdateShipmentCommandHandler edits a shipment and recomputes its price and ETA.
// It appends no ledger entry.
type UpdateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	policy     shipment.PricingPolicy
}

func NewUpdateShipmentCommandHandler(uowFactory ShipmentUoWFactory, policy shipment.PricingPolicy) UpdateShipmentCommandHandler {
	return UpdateShipmentCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func (h *UpdateShipmentCommandHandler) Handle(ctx context.Context, cmd UpdateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	aggregate, err := shipmentRepo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = checkReferences(ctx, uow, cmd.CustomerID(), cmd.OriginID(), cmd.DestinationID()); err != nil {
		return err
	}

	if err = aggregate.Update(
		cmd.CustomerID(), cmd.OriginID(), cmd.DestinationID(),
		cmd.Weight(), cmd.Notes(), h.policy,
	); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
