package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/ports"
)

// ChangeShipmentStatusCommandHandler applies a status transition. The status update
// and the ledger append share one transaction, so every stored status has exactly
// one matching milestone.
type ChangeShipmentStatusCommandHandler struct {
	uowFactory ShipmentUoWFactory
	now        func() time.Time
	notifier   eventNotifier
}

func NewChangeShipmentStatusCommandHandler(
	uowFactory ShipmentUoWFactory,
	now func() time.Time,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ChangeShipmentStatusCommandHandler {
	return ChangeShipmentStatusCommandHandler{
		uowFactory: uowFactory,
		now:        now,
		notifier:   newEventNotifier(publisher, logger),
	}
}

// Handle returns the ledger entry recorded for the transition, or
// BusinessRuleViolationError when the transition is not allowed.
func (h *ChangeShipmentStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeShipmentStatusCommand,
) (tracking.Event, error) {
	if err := cmd.Validate(); err != nil {
		return tracking.Event{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return tracking.Event{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	aggregate, err := shipmentRepo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return tracking.Event{}, err
	}

	if err = aggregate.ChangeStatus(cmd.Status()); err != nil {
		return tracking.Event{}, err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return tracking.Event{}, err
	}

	event, err := tracking.NewEvent(
		kernel.NewUUID(), aggregate.ID(), cmd.Status().String(), cmd.Location(), cmd.ActorID(), cmd.Notes(),
	)
	if err != nil {
		return tracking.Event{}, err
	}
	stored, err := uow.TrackingLedger().Append(ctx, event.Stamped(h.now()))
	if err != nil {
		return tracking.Event{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return tracking.Event{}, err
	}

	h.notifier.notify(ctx, ports.ShipmentStatusChangedEvent, aggregate, stored.Label(), stored.OccurredAt())
	return stored, nil
}
