package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/ports"
)

type AppendTrackingEventCommandHandler struct {
	uowFactory ShipmentUoWFactory
	now        func() time.Time
	notifier   eventNotifier
}

func NewAppendTrackingEventCommandHandler(
	uowFactory ShipmentUoWFactory,
	now func() time.Time,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AppendTrackingEventCommandHandler {
	return AppendTrackingEventCommandHandler{
		uowFactory: uowFactory,
		now:        now,
		notifier:   newEventNotifier(publisher, logger),
	}
}

// Handle appends the milestone and returns the stored entry.
func (h *AppendTrackingEventCommandHandler) Handle(
	ctx context.Context,
	cmd AppendTrackingEventCommand,
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

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return tracking.Event{}, err
	}

	event, err := tracking.NewEvent(
		kernel.NewUUID(), aggregate.ID(), cmd.Label(), cmd.Location(), cmd.ActorID(), cmd.Notes(),
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

	h.notifier.notify(ctx, ports.ShipmentMilestoneEvent, aggregate, stored.Label(), stored.OccurredAt())
	return stored, nil
}
