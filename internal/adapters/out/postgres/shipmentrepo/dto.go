// Package shipmentrepo persists shipment aggregates with GORM.
package shipmentrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO is the row of the shipments table. Status is stored by name so the
// column stays readable and independent of enum ordering.
type ShipmentDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code              string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	CustomerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	OriginID          uuid.UUID       `gorm:"type:uuid;not null"`
	DestinationID     uuid.UUID       `gorm:"type:uuid;not null"`
	Weight            decimal.Decimal `gorm:"type:numeric(8,2);not null"`
	Price             decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Status            string          `gorm:"type:varchar(20);not null;index"`
	CreatedAt         time.Time       `gorm:"type:timestamptz;not null;index"`
	EstimatedDelivery time.Time       `gorm:"type:timestamptz;not null"`
	Notes             string          `gorm:"type:varchar(1000);not null;default:''"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// mutableColumns are the columns Update may overwrite; code and created_at are immutable.
var mutableColumns = []string{
	"customer_id", "origin_id", "destination_id", "weight", "price", "status", "estimated_delivery", "notes",
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ID:                s.ID().Bytes(),
		Code:              s.Code().String(),
		CustomerID:        s.CustomerID().Bytes(),
		OriginID:          s.OriginID().Bytes(),
		DestinationID:     s.DestinationID().Bytes(),
		Weight:            s.Weight(),
		Price:             s.Price(),
		Status:            s.Status().String(),
		CreatedAt:         s.CreatedAt(),
		EstimatedDelivery: s.EstimatedDelivery(),
		Notes:             s.Notes(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.CustomerID, dto.OriginID, dto.DestinationID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	code, err := shipment.NewCode(dto.Code)
	if err != nil {
		return nil, err
	}

	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		ids[0], code, ids[1], ids[2], ids[3],
		dto.Weight, dto.Price, status,
		dto.CreatedAt, dto.EstimatedDelivery, dto.Notes,
	)
}
