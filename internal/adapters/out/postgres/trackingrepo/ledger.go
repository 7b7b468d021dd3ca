package trackingrepo

import (
	"context"
	"errors"
	"time"

	"logistics/internal/adapters/out/postgres/shipmentrepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTrackingLedger implements ports.TrackingLedger. It never updates or deletes rows.
type GormTrackingLedger struct {
	db      *gorm.DB
	tracker aggregateTracker
	now     func() time.Time
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTrackingLedger stamps unstamped events with now.
func NewGormTrackingLedger(db *gorm.DB, tracker aggregateTracker, now func() time.Time) *GormTrackingLedger {
	if now == nil {
		now = time.Now
	}
	return &GormTrackingLedger{
		db:      db,
		tracker: tracker,
		now:     now,
	}
}

func (l *GormTrackingLedger) Append(ctx context.Context, event tracking.Event) (tracking.Event, error) {
	if err := event.Validate(); err != nil {
		return tracking.Event{}, err
	}
	if !event.IsStamped() {
		event = event.Stamped(l.now())
	}

	var count int64
	if err := l.db.WithContext(ctx).
		Model(&shipmentrepo.ShipmentDTO{}).
		Where("id = ?", event.ShipmentID().Bytes()).
		Count(&count).Error; err != nil {
		return tracking.Event{}, err
	}
	if count == 0 {
		return tracking.Event{}, errs.NewObjectNotFoundError("shipment", event.ShipmentID().String())
	}

	dto := fromDomain(event)
	if err := l.db.WithContext(ctx).Omit("Shipment").Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return tracking.Event{}, errs.NewObjectNotFoundErrorWithCause("shipment", event.ShipmentID().String(), err)
		}
		return tracking.Event{}, err
	}

	l.tracker.TrackAggregate(event.ID(), event)
	return event, nil
}

func (l *GormTrackingLedger) ListByShipment(
	ctx context.Context,
	shipmentID kernel.UUID,
	order ports.SortOrder,
) ([]tracking.Event, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	orderBy := "occurred_at ASC, seq ASC"
	if order == ports.Descending {
		orderBy = "occurred_at DESC, seq DESC"
	}

	var dtos []TrackingEventDTO
	if err := l.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order(orderBy).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]tracking.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func (l *GormTrackingLedger) Latest(ctx context.Context, shipmentID kernel.UUID) (*tracking.Event, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TrackingEventDTO
	if err := l.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("occurred_at DESC, seq DESC").
		Limit(1).
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, nil
	}

	e, err := toDomain(dtos[0])
	if err != nil {
		return nil, err
	}
	return &e, nil
}
