// Package trackingrepo implements the append-only tracking ledger on PostgreSQL.
//
// Rows carry a bigserial Seq that breaks ties between events stamped with the same
// instant, giving every shipment history a total order of (occurred_at, seq). The
// composite index idx_tracking_shipment_time serves both listings and the latest lookup.
package trackingrepo

import (
	"time"

	"logistics/internal/adapters/out/postgres/shipmentrepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

type TrackingEventDTO struct {
	Seq        int64      `gorm:"primaryKey;autoIncrement;index:idx_tracking_shipment_time,priority:3"`
	ID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	ShipmentID uuid.UUID  `gorm:"type:uuid;not null;index:idx_tracking_shipment_time,priority:1"`
	OccurredAt time.Time  `gorm:"type:timestamptz;not null;index:idx_tracking_shipment_time,priority:2"`
	Location   *string    `gorm:"type:varchar(100)"`
	Label      string     `gorm:"type:varchar(100);not null"`
	UserID     *uuid.UUID `gorm:"type:uuid"`
	Notes      *string    `gorm:"type:varchar(1000)"`

	Shipment *shipmentrepo.ShipmentDTO `gorm:"foreignKey:ShipmentID;references:ID;constraint:OnDelete:CASCADE"`
}

func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

func fromDomain(e tracking.Event) TrackingEventDTO {
	var userID *uuid.UUID
	if id := e.UserID(); id != nil {
		raw := id.Bytes()
		userID = &raw
	}

	return TrackingEventDTO{
		ID:         e.ID().Bytes(),
		ShipmentID: e.ShipmentID().Bytes(),
		OccurredAt: e.OccurredAt(),
		Location:   nullable(e.Location()),
		Label:      e.Label(),
		UserID:     userID,
		Notes:      nullable(e.Notes()),
	}
}

func toDomain(dto TrackingEventDTO) (tracking.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return tracking.Event{}, err
	}

	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return tracking.Event{}, err
	}

	var userID *kernel.UUID
	if dto.UserID != nil {
		uID, userErr := kernel.UUIDFromBytes((*dto.UserID)[:])
		if userErr != nil {
			return tracking.Event{}, userErr
		}
		userID = &uID
	}

	return tracking.RestoreEvent(id, shipmentID, dto.OccurredAt, dto.Label, deref(dto.Location), userID, deref(dto.Notes))
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
