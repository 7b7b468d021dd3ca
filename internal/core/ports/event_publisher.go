package ports

import (
	"context"
	"time"
)

// ShipmentEvent is the integration message emitted after a shipment change commits.
type ShipmentEvent struct {
	Type       string    `json:"type"`
	ShipmentID string    `json:"shipmentId"`
	Code       string    `json:"code"`
	Status     string    `json:"status"`
	Label      string    `json:"label,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

const (
	ShipmentCreatedEvent       = "shipment.created"
	ShipmentStatusChangedEvent = "shipment.status_changed"
	ShipmentDeletedEvent       = "shipment.deleted"
	ShipmentMilestoneEvent     = "shipment.milestone"
)

// EventPublisher delivers integration events. Publishing happens after commit and is
// best effort: failures are logged, never rolled back into the business operation.
type EventPublisher interface {
	Publish(ctx context.Context, event ShipmentEvent) error
}
