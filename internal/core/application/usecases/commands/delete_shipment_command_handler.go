package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/ports"
)

// DeleteShipmentCommandHandler removes a shipment. Its tracking history and packages
// are removed by the database cascade.
type DeleteShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	now        func() time.Time
	notifier   eventNotifier
}

func NewDeleteShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	now func() time.Time,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) DeleteShipmentCommandHandler {
	return DeleteShipmentCommandHandler{
		uowFactory: uowFactory,
		now:        now,
		notifier:   newEventNotifier(publisher, logger),
	}
}

func (h *DeleteShipmentCommandHandler) Handle(ctx context.Context, cmd DeleteShipmentCommand) error {
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
	aggregate, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = shipmentRepo.Delete(ctx, aggregate.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.notify(ctx, ports.ShipmentDeletedEvent, aggregate, "", h.now())
	return nil
}
