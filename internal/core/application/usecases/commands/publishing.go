package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/ports"
)

// eventNotifier publishes after commit. A failed publish is logged and swallowed:
// the state change already happened and the ledger remains the source of truth.
type eventNotifier struct {
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func newEventNotifier(publisher ports.EventPublisher, logger *slog.Logger) eventNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return eventNotifier{publisher: publisher, logger: logger}
}

func (n eventNotifier) notify(ctx context.Context, eventType string, s *shipment.Shipment, label string, at time.Time) {
	if n.publisher == nil {
		return
	}

	event := ports.ShipmentEvent{
		Type:       eventType,
		ShipmentID: s.ID().String(),
		Code:       s.Code().String(),
		Status:     s.Status().String(),
		Label:      label,
		OccurredAt: at,
	}
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.WarnContext(ctx, "Failed to publish shipment event",
			"type", eventType, "shipment_id", event.ShipmentID, "error", err)
	}
}
