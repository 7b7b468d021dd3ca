package queries

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListTrackingEventsQueryHandler reads the ledger in (occurred_at, seq) order, the
// same total order the ledger adapter uses.
type ListTrackingEventsQueryHandler struct {
	db *gorm.DB
}

func NewListTrackingEventsQueryHandler(db *gorm.DB) ListTrackingEventsQueryHandler {
	return ListTrackingEventsQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError for unknown shipments and an empty slice for
// shipments without history.
func (h ListTrackingEventsQueryHandler) Handle(
	ctx context.Context,
	query ListTrackingEventsQuery,
) ([]TrackingEventView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	if err := ensureShipmentExists(db, query.ShipmentID()); err != nil {
		return nil, err
	}

	orderBy := " ORDER BY occurred_at ASC, seq ASC"
	if query.Order() == ports.Descending {
		orderBy = " ORDER BY occurred_at DESC, seq DESC"
	}

	rows, err := db.Raw(trackingEventSelect+" WHERE shipment_id = ?"+orderBy, query.ShipmentID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]TrackingEventView, 0)
	for rows.Next() {
		event, scanErr := scanTrackingEvent(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

type GetLatestTrackingEventQueryHandler struct {
	db *gorm.DB
}

func NewGetLatestTrackingEventQueryHandler(db *gorm.DB) GetLatestTrackingEventQueryHandler {
	return GetLatestTrackingEventQueryHandler{db: db}
}

// Handle returns nil without error when the shipment exists but has no history.
func (h GetLatestTrackingEventQueryHandler) Handle(
	ctx context.Context,
	query GetLatestTrackingEventQuery,
) (*TrackingEventView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	if err := ensureShipmentExists(db, query.ShipmentID()); err != nil {
		return nil, err
	}
	return latestTrackingEvent(db, query.ShipmentID().Bytes())
}

func latestTrackingEvent(db *gorm.DB, shipmentID uuid.UUID) (*TrackingEventView, error) {
	rows, err := db.Raw(
		trackingEventSelect+" WHERE shipment_id = ? ORDER BY occurred_at DESC, seq DESC LIMIT 1", shipmentID,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	event, err := scanTrackingEvent(rows)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func ensureShipmentExists(db *gorm.DB, shipmentID kernel.UUID) error {
	var exists bool
	if err := db.Raw("SELECT EXISTS (SELECT 1 FROM shipments WHERE id = ?)", shipmentID.Bytes()).
		Scan(&exists).Error; err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("shipment", shipmentID)
	}
	return nil
}
